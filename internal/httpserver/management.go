package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/panjf2000/ants/v2"

	"github.com/skillcoder/procadmin/internal/infra/management"
)

type beansResponse struct {
	Names []string `json:"names"`
}

type valueResponse struct {
	Value any `json:"value"`
}

type acceptedResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type invokeRequest struct {
	Params []string `json:"params"`
}

func (s *Server) handleListBeans(w http.ResponseWriter, r *http.Request) {
	names := s.registry.Names(r.URL.Query().Get("domain"))

	response := beansResponse{Names: make([]string, 0, len(names))}
	for _, name := range names {
		response.Names = append(response.Names, name.String())
	}

	s.writeJSON(r.Context(), w, http.StatusOK, response)
}

func (s *Server) handleGetBean(w http.ResponseWriter, r *http.Request) {
	name, err := objectNameParam(r)
	if err != nil {
		writeError(w, statusFor(err), err)

		return
	}

	info, err := s.registry.Info(name)
	if err != nil {
		writeError(w, statusFor(err), err)

		return
	}

	s.writeJSON(r.Context(), w, http.StatusOK, info)
}

func (s *Server) handleGetAttribute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, err := objectNameParam(r)
	if err != nil {
		writeError(w, statusFor(err), err)

		return
	}

	value, err := s.registry.GetAttribute(ctx, name, chi.URLParam(r, "attribute"))
	if err != nil {
		s.logger.DebugContext(ctx, "get attribute failed", "reason", err)
		writeError(w, statusFor(err), err)

		return
	}

	s.writeJSON(ctx, w, http.StatusOK, valueResponse{Value: value})
}

// handleInvoke answers info operations synchronously. Action operations run
// on the action pool and are answered with 202.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.logger.With("traceID", middleware.GetReqID(ctx))

	name, err := objectNameParam(r)
	if err != nil {
		writeError(w, statusFor(err), err)

		return
	}

	params, err := decodeParams(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)

		return
	}

	operation := chi.URLParam(r, "operation")

	op, err := s.registry.Operation(name, operation)
	if err != nil {
		writeError(w, statusFor(err), err)

		return
	}

	if len(params) != len(op.Params) {
		err := fmt.Errorf("%w: %s wants %d params, got %d",
			management.ErrInvalidParams, operation, len(op.Params), len(params))
		writeError(w, http.StatusBadRequest, err)

		return
	}

	if op.Impact != management.ImpactAction {
		value, err := s.registry.Invoke(ctx, name, operation, params)
		if err != nil {
			logger.WarnContext(ctx, "operation failed", "operation", operation, "reason", err)
			writeError(w, statusFor(err), err)

			return
		}

		s.writeJSON(ctx, w, http.StatusOK, valueResponse{Value: value})

		return
	}

	actionCtx := context.WithoutCancel(ctx)

	err = s.actions.Submit(func() {
		if _, err := s.registry.Invoke(actionCtx, name, operation, params); err != nil {
			logger.ErrorContext(actionCtx, "action operation failed", "operation", operation, "reason", err)

			return
		}

		logger.InfoContext(actionCtx, "action operation completed", "operation", operation)
	})
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, ants.ErrPoolOverload) {
			status = http.StatusTooManyRequests
		}

		writeError(w, status, fmt.Errorf("%w: %w", ErrActionRejected, err))

		return
	}

	s.writeJSON(ctx, w, http.StatusAccepted, acceptedResponse{Status: "accepted"})
}

func objectNameParam(r *http.Request) (management.ObjectName, error) {
	raw, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		return management.ObjectName{}, fmt.Errorf("%w: %w", management.ErrMalformedObjectName, err)
	}

	name, err := management.ParseObjectName(raw)
	if err != nil {
		return management.ObjectName{}, fmt.Errorf("object name %q: %w", raw, err)
	}

	return name, nil
}

func decodeParams(w http.ResponseWriter, r *http.Request) ([]string, error) {
	var req invokeRequest

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	return req.Params, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, management.ErrInstanceNotFound),
		errors.Is(err, management.ErrAttributeNotFound),
		errors.Is(err, management.ErrOperationNotFound):
		return http.StatusNotFound
	case errors.Is(err, management.ErrInvalidParams),
		errors.Is(err, management.ErrMalformedObjectName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}
