package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	stageResults  *prom.CounterVec
	runOutcome    *prom.CounterVec
	sidebars      prom.Gauge
	documents     prom.Gauge
	lintIssues    *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual run stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.sidebars = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "sidebars",
			Help:      "Sidebars in the last run, including generated ones",
		})
		pr.documents = prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "documents",
			Help:      "Documents found in the content directory in the last run",
		})
		pr.lintIssues = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "lint_issues",
			Help:      "Lint issues in the last run by severity",
		}, []string{"severity"})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.runOutcome, pr.sidebars, pr.documents, pr.lintIssues)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetSidebars(n int) {
	if p == nil || p.sidebars == nil {
		return
	}
	p.sidebars.Set(float64(n))
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) SetLintIssues(severity string, n int) {
	if p == nil || p.lintIssues == nil {
		return
	}
	p.lintIssues.WithLabelValues(severity).Set(float64(n))
}

// WriteTextfile writes the registry in the text exposition format to path,
// atomically, for the node exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
