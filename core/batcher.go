package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// CommitHook is the external sink boundary. The Batcher never interprets
// the returned Signature.
type CommitHook func(context.Context, BatchCommitment) (Signature, error)

// Config is the closed configuration record for a Batcher, per spec §6.
// DisableBatching is the inverse of the wire-level batching_enabled
// field (default true): a zero Config already batches, so a caller who
// never touches this field — or a YAML file that omits batching_enabled
// — gets the spec default instead of silently running one-record
// batches.
type Config struct {
	MaxBatchSize    int
	FlushInterval   time.Duration
	DisableBatching bool
	BaseBatchID     uint64
	Storage         ObjectStore
	Hasher          Hasher
	Merkle          MerkleEngine
	CommitHook      CommitHook
	Timer           Timer
	Logger          *logrus.Logger
}

func (c *Config) setDefaults() {
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 100
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 5 * time.Second
	}
	if c.Timer == nil {
		c.Timer = NewRealTimer()
	}
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// Batcher accumulates Records and emits BatchCommitments on size- or
// time-triggered flushes. State is guarded by a single mutex protecting
// {open batch, batch registry, timer}, per spec §5.
type Batcher struct {
	mu     sync.Mutex
	cfg    Config
	logger *logrus.Logger
	zlog   *zap.SugaredLogger

	open        *Batch
	nextBatchID uint64
	registry    map[uint64]*Batch
	order       []uint64

	totalRecords      uint64
	totalBatches      uint64
	lastCommitAt      uint64
	lastCorrelationID string
	closed            bool
}

// NewBatcher validates cfg, applies defaults (spec §4.4), and returns a
// ready Batcher. Storage and CommitHook are required; there is no global
// singleton wiring (spec §9).
func NewBatcher(cfg Config) (*Batcher, error) {
	if cfg.Storage == nil {
		return nil, NewInvariantViolated("batcher requires a storage handle")
	}
	if cfg.CommitHook == nil {
		return nil, NewInvariantViolated("batcher requires a commit hook")
	}
	cfg.setDefaults()
	zlog, err := zap.NewProduction()
	var sugared *zap.SugaredLogger
	if err == nil {
		sugared = zlog.Sugar()
	} else {
		sugared = zap.NewNop().Sugar()
	}
	return &Batcher{
		cfg:         cfg,
		logger:      cfg.Logger,
		zlog:        sugared,
		nextBatchID: cfg.BaseBatchID,
		registry:    make(map[uint64]*Batch),
	}, nil
}

// Enqueue stores content_bytes (unless storage is disabled), appends the
// resulting Record to the current open batch, arming a flush timer if
// this is the first record of a new batch, and seals immediately when
// the batch reaches max_batch_size or batching is disabled.
func (b *Batcher) Enqueue(ctx context.Context, in RecordInput) (RecordHandle, error) {
	if !in.Kind.Valid() {
		return RecordHandle{}, NewInvariantViolated("invalid record kind")
	}

	contentHash := b.cfg.Hasher.ContentDigestOf(in.Content)
	_, err := b.cfg.Storage.Put(ctx, in.Content)
	if err != nil && !errors.Is(err, ErrStorageDisabled) {
		return RecordHandle{}, NewStorageFailed(err)
	}

	rec := Record{
		Channel:     in.Channel,
		Sender:      in.Sender,
		ContentHash: contentHash,
		ExternalRef: contentHash,
		Kind:        in.Kind,
		CreatedAt:   uint64(time.Now().UnixMilli()),
		ReplyTo:     in.ReplyTo,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return RecordHandle{}, ErrClosed
	}

	mustFlushNow := b.cfg.DisableBatching
	if b.open == nil {
		b.openNewBatchLocked()
	}
	b.open.Records = append(b.open.Records, rec)
	b.totalRecords++
	leafIndex := len(b.open.Records) - 1
	batchID := b.open.ID
	if len(b.open.Records) >= b.cfg.MaxBatchSize {
		mustFlushNow = true
	}
	b.mu.Unlock()

	handle := RecordHandle{BatchID: batchID, LeafIndex: leafIndex, ContentHash: contentHash}

	if mustFlushNow {
		if _, err := b.Flush(ctx); err != nil {
			return handle, err
		}
	}
	return handle, nil
}

// openNewBatchLocked creates a new open batch and arms its flush timer.
// Callers must hold b.mu.
func (b *Batcher) openNewBatchLocked() {
	id := b.nextBatchID
	b.nextBatchID++
	correlationID := uuid.New().String()
	b.open = &Batch{
		ID:            id,
		CorrelationID: correlationID,
		State:         BatchOpen,
		Records:       make([]Record, 0, b.cfg.MaxBatchSize),
	}
	b.logger.Infof("batcher: opened batch %d (correlation %s)", id, correlationID)
	b.cfg.Timer.Arm(b.cfg.FlushInterval, func() {
		b.flushOnTimer()
	})
}

func (b *Batcher) flushOnTimer() {
	if _, err := b.Flush(context.Background()); err != nil {
		b.logger.Errorf("batcher: timer-triggered flush failed: %v", err)
	}
}

// Flush seals the current open batch if non-empty, builds the Merkle
// tree, and invokes the commit hook. It returns the commitment if a
// flush occurred, or (nil, nil) if there was nothing to flush.
func (b *Batcher) Flush(ctx context.Context) (*BatchCommitment, error) {
	batch, commitment, err := b.sealLocked(ctx)
	if err != nil || batch == nil {
		return nil, err
	}

	sig, hookErr := b.cfg.CommitHook(ctx, *commitment)

	b.mu.Lock()
	defer b.mu.Unlock()
	if hookErr != nil {
		batch.State = BatchFailed
		batch.LastErr = hookErr
		b.zlog.Errorw("batch commit failed", "batch_id", batch.ID, "error", hookErr)
		return commitment, NewBatchCommitFailed(batch.ID, hookErr)
	}
	batch.State = BatchCommitted
	batch.Signature = &sig
	b.lastCommitAt = commitment.SealedAt
	b.lastCorrelationID = commitment.CorrelationID
	b.logger.Infof("batcher: committed batch %d", batch.ID)
	return commitment, nil
}

// sealLocked seals the current open batch (if non-empty) and returns it
// along with its commitment, but does not invoke the commit hook — that
// suspension point happens outside any lock.
func (b *Batcher) sealLocked(ctx context.Context) (*Batch, *BatchCommitment, error) {
	b.mu.Lock()
	if b.open == nil || len(b.open.Records) == 0 {
		b.mu.Unlock()
		return nil, nil, nil
	}
	batch := b.open
	b.cfg.Timer.Cancel()
	b.open = nil

	if !b.cfg.Storage.NodeInfo().Disabled {
		for _, rec := range batch.Records {
			if !b.cfg.Storage.Exists(ctx, rec.ExternalRef) {
				b.mu.Unlock()
				return nil, nil, NewInvariantViolated("record external_ref missing from object store: " + rec.ExternalRef.Hex())
			}
		}
	}

	leaves := make([]Digest, len(batch.Records))
	for i, rec := range batch.Records {
		leaf, err := b.cfg.Hasher.RecordLeaf(rec)
		if err != nil {
			b.mu.Unlock()
			return nil, nil, NewInvariantViolated("failed to compute record leaf: " + err.Error())
		}
		leaves[i] = leaf
	}

	tree, err := b.cfg.Merkle.Build(leaves)
	if err != nil {
		b.mu.Unlock()
		return nil, nil, err
	}
	proofs := make([][]Digest, len(leaves))
	for i := range leaves {
		p, err := b.cfg.Merkle.Proof(tree, i)
		if err != nil {
			b.mu.Unlock()
			return nil, nil, err
		}
		proofs[i] = p
	}

	batch.State = BatchSealed
	batch.Root = tree.Root()
	batch.Leaves = leaves
	batch.Proofs = proofs
	batch.SealedAt = uint64(time.Now().UnixMilli())

	b.registry[batch.ID] = batch
	b.order = append(b.order, batch.ID)
	b.totalBatches++

	commitment := &BatchCommitment{
		BatchID:       batch.ID,
		CorrelationID: batch.CorrelationID,
		Root:          batch.Root,
		Leaves:        append([]Digest(nil), batch.Leaves...),
		Proofs:        append([][]Digest(nil), batch.Proofs...),
		SealedAt:      batch.SealedAt,
	}
	b.logger.Infof("batcher: sealed batch %d (%d records)", batch.ID, len(batch.Records))
	b.mu.Unlock()
	return batch, commitment, nil
}

// RetryBatch re-invokes the commit hook for a sealed/failed batch using
// its already-computed root — the root is never recomputed, so the sink
// sees byte-identical commitments across retries.
func (b *Batcher) RetryBatch(ctx context.Context, batchID uint64) (Signature, error) {
	b.mu.Lock()
	batch, ok := b.registry[batchID]
	if !ok {
		b.mu.Unlock()
		return Signature{}, NewNotFound("batch")
	}
	if batch.State == BatchCommitted {
		sig := *batch.Signature
		b.mu.Unlock()
		return sig, nil
	}
	commitment := BatchCommitment{
		BatchID:       batch.ID,
		CorrelationID: batch.CorrelationID,
		Root:          batch.Root,
		Leaves:        append([]Digest(nil), batch.Leaves...),
		Proofs:        append([][]Digest(nil), batch.Proofs...),
		SealedAt:      batch.SealedAt,
	}
	b.mu.Unlock()

	sig, err := b.cfg.CommitHook(ctx, commitment)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		batch.State = BatchFailed
		batch.LastErr = err
		b.zlog.Errorw("batch retry failed", "batch_id", batchID, "error", err)
		return Signature{}, NewBatchCommitFailed(batchID, err)
	}
	batch.State = BatchCommitted
	batch.Signature = &sig
	b.lastCommitAt = commitment.SealedAt
	b.lastCorrelationID = commitment.CorrelationID
	return sig, nil
}

// GetBatch returns a snapshot of batch batchID's state, or ErrNotFound.
func (b *Batcher) GetBatch(batchID uint64) (Batch, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch, ok := b.registry[batchID]
	if !ok {
		return Batch{}, NewNotFound("batch")
	}
	return *batch, nil
}

// Shutdown flushes any pending records, cancels the flush timer, and
// refuses further enqueues. The in-progress flush (if any) completes
// synchronously before Shutdown returns, so no batch is partially lost.
func (b *Batcher) Shutdown(ctx context.Context) error {
	if _, err := b.Flush(ctx); err != nil {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		return err
	}
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	return nil
}

// Stats reports current queue depth and lifetime counters.
func (b *Batcher) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	queueLen := 0
	if b.open != nil {
		queueLen = len(b.open.Records)
	}
	return Stats{
		QueueLen:          queueLen,
		LastCommitAt:      b.lastCommitAt,
		LastCorrelationID: b.lastCorrelationID,
		TotalBatches:      b.totalBatches,
		TotalRecords:      b.totalRecords,
	}
}
