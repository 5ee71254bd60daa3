package appstate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type statusResponse struct {
	State     string        `json:"state"`
	Uptime    string        `json:"uptime"`
	StartTime time.Time     `json:"startTime"`
	UptimeSec float64       `json:"uptimeSeconds"`
	Process   *ProcessStats `json:"process,omitempty"`
}

// HandleStatus returns an http.HandlerFunc for the /-/status endpoint.
// procStats may be nil; process usage is then omitted.
func HandleStatus(
	logger *slog.Logger,
	appState statusGetter,
	procStats processStatter,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := middleware.GetReqID(ctx)
		logger := logger.With("traceID", requestID)

		state := appState.GetState()
		uptime := appState.GetUptime()
		startTime := appState.GetStartTime()

		response := statusResponse{
			State:     string(state),
			Uptime:    uptime.String(),
			StartTime: startTime,
			UptimeSec: uptime.Seconds(),
		}

		if procStats != nil {
			stats, err := procStats.Stats(ctx)
			if err != nil {
				logger.WarnContext(ctx, "failed to read process stats", "reason", err)
			} else {
				response.Process = &stats
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.ErrorContext(ctx, "failed to encode status response",
				"error", err,
			)

			return
		}

		logger.DebugContext(ctx, "status response sent",
			"state", string(state),
			"uptime", uptime.String(),
		)
	}
}
