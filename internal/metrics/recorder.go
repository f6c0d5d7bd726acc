package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// RunOutcomeLabel is the final status of one run.
type RunOutcomeLabel string

const (
	RunOutcomeSuccess  RunOutcomeLabel = "success"
	RunOutcomeWarning  RunOutcomeLabel = "warning"
	RunOutcomeFailed   RunOutcomeLabel = "failed"
	RunOutcomeCanceled RunOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for run and stage metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncRunOutcome(outcome RunOutcomeLabel)
	SetSidebars(n int)
	SetDocuments(n int)
	SetLintIssues(severity string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncRunOutcome(RunOutcomeLabel)              {}
func (NoopRecorder) SetSidebars(int)                            {}
func (NoopRecorder) SetDocuments(int)                           {}
func (NoopRecorder) SetLintIssues(string, int)                  {}
