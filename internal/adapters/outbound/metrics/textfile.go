// Package metrics exports per-run remediation gauges in the Prometheus
// textfile format, for node_exporter's textfile collector on CI runners.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cifix/cifix/internal/domain"
)

// Recorder implements domain.RunRecorder on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	logFiles     prometheus.Gauge
	skippedLogs  prometheus.Gauge
	ruleTrigger  *prometheus.GaugeVec
	ruleChanged  *prometheus.GaugeVec
	committed    prometheus.Gauge
	lastRunStamp prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		logFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cifix_log_files_scanned",
			Help: "Log files read into the corpus.",
		}),
		skippedLogs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cifix_log_files_skipped",
			Help: "Log files skipped because they could not be read.",
		}),
		ruleTrigger: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cifix_rule_triggered",
			Help: "1 if the rule's fingerprint was found in the logs.",
		}, []string{"rule"}),
		ruleChanged: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cifix_rule_changed",
			Help: "1 if the rule changed its target file.",
		}, []string{"rule"}),
		committed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cifix_committed",
			Help: "1 if the fixes were committed.",
		}),
		lastRunStamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cifix_last_run_timestamp_seconds",
			Help: "Unix time of the last remediation run.",
		}),
	}
	r.registry.MustRegister(r.logFiles, r.skippedLogs, r.ruleTrigger, r.ruleChanged, r.committed, r.lastRunStamp)
	return r
}

func (r *Recorder) Record(report *domain.RemediationReport) {
	r.logFiles.Set(float64(report.LogFiles))
	r.skippedLogs.Set(float64(report.SkippedLogs))
	for _, o := range report.Rules {
		r.ruleTrigger.WithLabelValues(o.ID).Set(boolValue(o.Triggered))
		r.ruleChanged.WithLabelValues(o.ID).Set(boolValue(o.Changed))
	}
	r.committed.Set(boolValue(report.Committed))
	if !report.Timestamp.IsZero() {
		r.lastRunStamp.Set(float64(report.Timestamp.Unix()))
	}
}

// WriteTextfile atomically writes the current values to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
