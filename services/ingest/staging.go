package ingest

import (
	"errors"
	"sync"
	"time"

	"github.com/mazen160/go-random"
)

type BatchStatus string

const (
	StatusPending   BatchStatus = "pending"
	StatusConfirmed BatchStatus = "confirmed"
	StatusCancelled BatchStatus = "cancelled"
	// claimed by a confirm in flight, so the merge runs exactly once
	statusConfirming BatchStatus = "confirming"
)

var (
	ErrBatchNotFound  = errors.New("batch not found")
	ErrBatchFinalized = errors.New("batch already finalized")
)

// Batch is one parsed listing staged for confirmation.
type Batch struct {
	ID          string
	Institution string
	Call        int
	Records     []Record
	Summary     Summary
	Report      ExtractReport
	Unresolved  UnresolvedReport
	Status      BatchStatus
	CreatedAt   time.Time
}

const DefaultStagingTTL = time.Hour

// Staging holds pending batches between parse and confirm/cancel. It is
// an explicit store with a bounded lifetime: entries older than the ttl
// are swept on every access, whatever their status.
type Staging struct {
	mu      sync.Mutex
	ttl     time.Duration
	batches map[string]*Batch
	now     func() time.Time
}

func NewStaging(ttl time.Duration) *Staging {
	if ttl <= 0 {
		ttl = DefaultStagingTTL
	}
	return &Staging{
		ttl:     ttl,
		batches: map[string]*Batch{},
		now:     time.Now,
	}
}

// Add stages a batch as pending under a fresh random id.
func (s *Staging) Add(batch Batch) (string, error) {
	id, err := random.String(24)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	batch.ID = id
	batch.Status = StatusPending
	batch.CreatedAt = s.now()
	s.batches[id] = &batch
	return id, nil
}

func (s *Staging) Get(id string) (Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	batch, ok := s.batches[id]
	if !ok {
		return Batch{}, ErrBatchNotFound
	}
	out := *batch
	if out.Status == statusConfirming {
		// a claim in flight is still pending to observers
		out.Status = StatusPending
	}
	return out, nil
}

// BeginConfirm claims a pending batch for merging. A second confirm (or
// a confirm racing another) gets ErrBatchFinalized.
func (s *Staging) BeginConfirm(id string) (Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	batch, ok := s.batches[id]
	if !ok {
		return Batch{}, ErrBatchNotFound
	}
	if batch.Status != StatusPending {
		return Batch{}, ErrBatchFinalized
	}
	batch.Status = statusConfirming
	return *batch, nil
}

// FinishConfirm marks a claimed batch confirmed.
func (s *Staging) FinishConfirm(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if batch, ok := s.batches[id]; ok {
		batch.Status = StatusConfirmed
	}
}

// AbortConfirm releases a claim after a failed merge so the batch can
// be confirmed again.
func (s *Staging) AbortConfirm(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if batch, ok := s.batches[id]; ok && batch.Status == statusConfirming {
		batch.Status = StatusPending
	}
}

// Cancel discards a pending batch. Finalized batches conflict.
func (s *Staging) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()

	batch, ok := s.batches[id]
	if !ok {
		return ErrBatchNotFound
	}
	if batch.Status != StatusPending {
		return ErrBatchFinalized
	}
	batch.Status = StatusCancelled
	batch.Records = nil
	return nil
}

// sweep drops expired entries. callers hold s.mu.
func (s *Staging) sweep() {
	deadline := s.now().Add(-s.ttl)
	for id, batch := range s.batches {
		if batch.CreatedAt.Before(deadline) {
			delete(s.batches, id)
		}
	}
}
