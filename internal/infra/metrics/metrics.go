package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registryBeans = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "procadmin_registry_beans",
		Help: "Number of beans currently published in the management registry.",
	},
)

var managementInvocationsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "procadmin_management_invocations_total",
		Help: "Total number of management attribute reads and operation invocations by result.",
	},
	[]string{"operation", "result"},
)

var applicationReady = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "procadmin_application_ready",
		Help: "1 once the application has signalled readiness, 0 before.",
	},
)

var restartScheduledTimestamp = promauto.With(prometheus.DefaultRegisterer).NewGauge(
	prometheus.GaugeOpts{
		Name: "procadmin_restart_scheduled_timestamp_seconds",
		Help: "Unix time of the next scheduled restart, 0 when none is pending.",
	},
)

// SetRegistryBeans records the number of registered beans.
func SetRegistryBeans(count int) {
	registryBeans.Set(float64(count))
}

// RecordInvocation counts one management call. result is "ok" or an error class.
func RecordInvocation(operation, result string) {
	managementInvocationsTotal.WithLabelValues(operation, result).Inc()
}

// SetApplicationReady records the readiness flag.
func SetApplicationReady(ready bool) {
	if ready {
		applicationReady.Set(1)

		return
	}

	applicationReady.Set(0)
}

// SetRestartScheduled records the next scheduled restart; the zero time clears it.
func SetRestartScheduled(at time.Time) {
	if at.IsZero() {
		restartScheduledTimestamp.Set(0)

		return
	}

	restartScheduledTimestamp.Set(float64(at.Unix()))
}
