package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestSetRestartScheduled(t *testing.T) {
	at := time.Date(2026, 10, 16, 4, 0, 0, 0, time.UTC)

	SetRestartScheduled(at)
	require.InDelta(t, float64(at.Unix()), testutil.ToFloat64(restartScheduledTimestamp), 0)

	SetRestartScheduled(time.Time{})
	require.InDelta(t, 0, testutil.ToFloat64(restartScheduledTimestamp), 0)
}

func TestRecordInvocation(t *testing.T) {
	before := testutil.ToFloat64(managementInvocationsTotal.WithLabelValues("getProperty", "ok"))

	RecordInvocation("getProperty", "ok")

	require.InDelta(t, before+1, testutil.ToFloat64(managementInvocationsTotal.WithLabelValues("getProperty", "ok")), 0)
}
