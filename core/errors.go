package core

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the compression pipeline. CPU errors
// (EmptyInput, IndexOutOfRange, MalformedProof) are caller bugs and are
// never retried. I/O errors (StorageFailed, BatchCommitFailed) preserve
// state so the caller can retry. InvariantViolated is fatal.
var (
	ErrStorageDisabled  = errors.New("core: storage disabled")
	ErrNotFound         = errors.New("core: key not found")
	ErrEmptyInput       = errors.New("core: empty input")
	ErrIndexOutOfRange  = errors.New("core: index out of range")
	ErrMalformedProof   = errors.New("core: malformed proof")
	ErrClosed           = errors.New("core: batcher closed")
	ErrInvariantViolated = errors.New("core: invariant violated")
)

// StorageFailedError wraps a backend I/O failure. Retryable at the
// caller's discretion.
type StorageFailedError struct {
	Reason error
}

func (e *StorageFailedError) Error() string {
	return fmt.Sprintf("core: storage failed: %v", e.Reason)
}

func (e *StorageFailedError) Unwrap() error { return e.Reason }

// NewStorageFailed wraps reason as a StorageFailedError.
func NewStorageFailed(reason error) error {
	return &StorageFailedError{Reason: reason}
}

// BatchCommitFailedError records a sink rejection. The batch keeps its
// sealed root and proofs, is marked BatchFailed, and can be re-sent with
// Batcher.RetryBatch.
type BatchCommitFailedError struct {
	BatchID uint64
	Reason  error
}

func (e *BatchCommitFailedError) Error() string {
	return fmt.Sprintf("core: batch %d commit failed: %v", e.BatchID, e.Reason)
}

func (e *BatchCommitFailedError) Unwrap() error { return e.Reason }

// NewBatchCommitFailed wraps reason as a BatchCommitFailedError for batchID.
func NewBatchCommitFailed(batchID uint64, reason error) error {
	return &BatchCommitFailedError{BatchID: batchID, Reason: reason}
}

// NotFoundError names the missing key so callers can log it usefully.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("core: not found: %s", e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound builds a NotFoundError for key.
func NewNotFound(key string) error {
	return &NotFoundError{Key: key}
}

// InvariantViolatedError carries a human-readable detail describing the
// corrupted state. Callers must treat this as fatal for the enclosing
// Batcher; see Batcher.Shutdown.
type InvariantViolatedError struct {
	Detail string
}

func (e *InvariantViolatedError) Error() string {
	return fmt.Sprintf("core: invariant violated: %s", e.Detail)
}

func (e *InvariantViolatedError) Unwrap() error { return ErrInvariantViolated }

// NewInvariantViolated builds an InvariantViolatedError with detail.
func NewInvariantViolated(detail string) error {
	return &InvariantViolatedError{Detail: detail}
}
