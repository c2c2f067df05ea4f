package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/limbo/squirrels/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	mutations, recoveries, writeErrors := observability.Collectors()

	okBefore := testutil.ToFloat64(mutations.WithLabelValues("register", observability.ResultOK))
	rejectedBefore := testutil.ToFloat64(mutations.WithLabelValues("register", observability.ResultRejected))
	observability.RecordMutation("register", nil)
	observability.RecordMutation("register", errors.New("invalid"))
	observability.RecordMutation("register", nil)
	assert.Equal(t, okBefore+2, testutil.ToFloat64(mutations.WithLabelValues("register", observability.ResultOK)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(mutations.WithLabelValues("register", observability.ResultRejected)))

	before := testutil.ToFloat64(recoveries.WithLabelValues("database", "malformed"))
	observability.RecordRecovery("database", "malformed")
	assert.Equal(t, before+1, testutil.ToFloat64(recoveries.WithLabelValues("database", "malformed")))

	observability.RecordSaved(time.Unix(1733000000, 0))
	assert.Contains(t, gatherNames(t), "squirrels_storage_last_save_timestamp_seconds")

	before = testutil.ToFloat64(writeErrors.WithLabelValues("session"))
	observability.RecordWriteError("session")
	assert.Equal(t, before+1, testutil.ToFloat64(writeErrors.WithLabelValues("session")))
}

func gatherNames(t *testing.T) []string {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}
