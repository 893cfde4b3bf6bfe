package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cifix/cifix/internal/adapters/outbound/metrics"
	"github.com/cifix/cifix/internal/domain"
)

func sampleReport() *domain.RemediationReport {
	return &domain.RemediationReport{
		LogFiles:    3,
		SkippedLogs: 1,
		Rules: []domain.RuleOutcome{
			{ID: "sdk-root", Triggered: true, Changed: true},
			{ID: "gradle-model-quote"},
		},
		Changed:   true,
		Committed: true,
		Timestamp: time.Unix(1700000000, 0),
	}
}

func TestRecorder_Record(t *testing.T) {
	r := metrics.New()
	r.Record(sampleReport())

	count, err := testutil.GatherAndCount(r.Gatherer(), "cifix_rule_triggered")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.New()
	r.Record(sampleReport())

	path := filepath.Join(t.TempDir(), "cifix.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "cifix_log_files_scanned 3")
	assert.Contains(t, out, "cifix_log_files_skipped 1")
	assert.Contains(t, out, `cifix_rule_triggered{rule="sdk-root"} 1`)
	assert.Contains(t, out, `cifix_rule_changed{rule="gradle-model-quote"} 0`)
	assert.Contains(t, out, "cifix_committed 1")
	assert.Contains(t, out, "cifix_last_run_timestamp_seconds ")
}
