package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPlanGenerated(t *testing.T) {
	before := testutil.ToFloat64(plansGenerated.WithLabelValues("week", "historical"))

	RecordPlanGenerated("week", "historical", 3*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(plansGenerated.WithLabelValues("week", "historical")))
}

func TestRecordRunsImportedIgnoresEmpty(t *testing.T) {
	before := testutil.ToFloat64(runsImported.WithLabelValues("gpx"))

	RecordRunsImported("gpx", 0)
	RecordRunsImported("gpx", 2)

	assert.Equal(t, before+2, testutil.ToFloat64(runsImported.WithLabelValues("gpx")))
}
