package qbench

/*
Regulator guards a benchmark loop. Before every repeat the harness lets the
regulator observe the metrics gathered so far and asks whether to limit. A
limiting regulator gets one chance to Renormalize; if it still limits, the
benchmark stops with ErrResourceExceeded.
*/
type Regulator interface {
	// Observe feeds the regulator the benchmark's metrics so far.
	Observe(metrics *Metrics)

	// Limit reports whether the next repeat should be refused.
	Limit() bool

	// Renormalize tries to bring usage back under the limits, for example by
	// releasing memory, and refreshes the regulator's view.
	Renormalize()
}
