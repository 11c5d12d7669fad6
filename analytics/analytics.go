// Package analytics summarizes Batcher activity. It is a deliberately
// thin shell over core.Stats, mirroring the shape of the original
// AnalyticsService's per-topic reports (sdk-python
// pod_protocol/services/analytics.py) without replicating its on-chain
// aggregation: the compression pipeline only ever knows the counters the
// Batcher tracks.
package analytics

import "github.com/yousif123412321/pod-protocol/core"

// Report is the network-wide summary surfaced to operators, mirroring
// NetworkAnalytics at SDK-shell fidelity.
type Report struct {
	TotalBatches       uint64
	TotalRecords       uint64
	AverageBatchSize   float64
	QueueLen           int
	LastCommitAtMillis uint64
	LastCorrelationID  string
}

// Summary derives a Report from the Batcher's current Stats.
func Summary(s core.Stats) Report {
	avg := 0.0
	if s.TotalBatches > 0 {
		avg = float64(s.TotalRecords) / float64(s.TotalBatches)
	}
	return Report{
		TotalBatches:       s.TotalBatches,
		TotalRecords:       s.TotalRecords,
		AverageBatchSize:   avg,
		QueueLen:           s.QueueLen,
		LastCommitAtMillis: s.LastCommitAt,
		LastCorrelationID:  s.LastCorrelationID,
	}
}
