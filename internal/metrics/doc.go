// Package metrics provides optional run metrics for slidedeck builds and
// figure comparisons.
//
// Components receive a Recorder and default to NoopRecorder, so metrics never
// require nil checks at call sites:
//
//	builder := deck.NewBuilder(outDir).WithRecorder(metrics.NoopRecorder{})
//
// When a textfile path is configured the CLI swaps in a PrometheusRecorder
// and, after the run, exports its registry with WriteTextfile for collection
// by the node_exporter textfile collector.
package metrics
