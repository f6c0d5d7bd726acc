// Package metrics records docnav run metrics: stage durations and outcomes,
// the size of the navigation, and lint issue counts.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder:
//
//	svc := build.NewService() // records nothing
//	svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A PrometheusRecorder can be exported with WriteTextfile for the node
// exporter's textfile collector, which suits a CLI that exits after each run.
package metrics
