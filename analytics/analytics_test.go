package analytics

import (
	"testing"

	"github.com/yousif123412321/pod-protocol/core"
)

func TestSummary_ZeroBatchesHasZeroAverage(t *testing.T) {
	r := Summary(core.Stats{})
	if r.AverageBatchSize != 0 {
		t.Fatalf("expected average batch size 0 with no batches, got %f", r.AverageBatchSize)
	}
}

func TestSummary_ComputesAverage(t *testing.T) {
	r := Summary(core.Stats{TotalBatches: 4, TotalRecords: 10, QueueLen: 2, LastCommitAt: 123, LastCorrelationID: "corr-1"})
	if r.AverageBatchSize != 2.5 {
		t.Fatalf("expected average batch size 2.5, got %f", r.AverageBatchSize)
	}
	if r.QueueLen != 2 || r.LastCommitAtMillis != 123 || r.LastCorrelationID != "corr-1" {
		t.Fatalf("unexpected pass-through fields: %+v", r)
	}
}
