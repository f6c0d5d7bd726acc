package metrics

import (
	"time"
)

// testRecorder counts calls; other packages' tests use their own fakes.
type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	runDurations   int
	runOutcomes    map[RunOutcomeLabel]int
	lintIssues     map[string]int
	sidebars       int
	documents      int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		runOutcomes:    map[RunOutcomeLabel]int{},
		lintIssues:     map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveRunDuration(_ time.Duration) { t.runDurations++ }
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncRunOutcome(outcome RunOutcomeLabel) { t.runOutcomes[outcome]++ }
func (t *testRecorder) SetSidebars(n int)                     { t.sidebars = n }
func (t *testRecorder) SetDocuments(n int)                    { t.documents = n }
func (t *testRecorder) SetLintIssues(severity string, n int)  { t.lintIssues[severity] = n }

var (
	_ Recorder = (*testRecorder)(nil)
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)
