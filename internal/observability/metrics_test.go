package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestRecordSummary(t *testing.T) {
	before := testutil.ToFloat64(workoutsSummarizedCounter.WithLabelValues("Running"))

	ts := time.Date(2025, time.October, 27, 20, 0, 0, 0, time.UTC)
	RecordSummary("Running", ts)

	require.Equal(t, before+1, testutil.ToFloat64(workoutsSummarizedCounter.WithLabelValues("Running")))

	metric := &dto.Metric{}
	require.NoError(t, lastSummaryGauge.Write(metric))
	require.Equal(t, float64(ts.Unix()), metric.GetGauge().GetValue())
}

func TestRecordRejectedPackageCollapsesUnknownCodes(t *testing.T) {
	before := testutil.ToFloat64(rejectedPackagesCounter.WithLabelValues("unrecognized"))

	RecordRejectedPackage("XYZ", false)
	RecordRejectedPackage("ABC", false)
	RecordRejectedPackage("RUN", true)

	require.Equal(t, before+2, testutil.ToFloat64(rejectedPackagesCounter.WithLabelValues("unrecognized")))
	require.Equal(t, 1.0, testutil.ToFloat64(rejectedPackagesCounter.WithLabelValues("RUN")))
}
