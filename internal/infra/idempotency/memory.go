package idempotency

import (
	"context"
	"sync"
	"time"

	"github.com/deanb221/caravan/internal/pkg/clock"
	"github.com/deanb221/caravan/internal/usecase/commands"

	"github.com/google/uuid"
)

type memoryEntry struct {
	record    commands.IdempotencyRecord
	expiresAt time.Time
}

// MemoryStore is the single-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*memoryEntry
	ttl     time.Duration
	clock   clock.Clock
}

func NewMemoryStore(clk clock.Clock, ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		entries: make(map[uuid.UUID]*memoryEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

func (s *MemoryStore) Reserve(_ context.Context, key uuid.UUID, requestHash string) (*commands.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if e, ok := s.entries[key]; ok {
		if now.Before(e.expiresAt) {
			rec := e.record
			return &rec, nil
		}
		delete(s.entries, key)
	}

	s.entries[key] = &memoryEntry{
		record: commands.IdempotencyRecord{
			Key:         key,
			Status:      commands.IdempotencyStatusProcessing,
			RequestHash: requestHash,
		},
		expiresAt: now.Add(s.ttl),
	}
	return nil, nil
}

func (s *MemoryStore) MarkCompleted(_ context.Context, key uuid.UUID, requestHash string, bookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{
		record: commands.IdempotencyRecord{
			Key:         key,
			Status:      commands.IdempotencyStatusCompleted,
			RequestHash: requestHash,
			BookingID:   &bookingID,
		},
		expiresAt: s.clock.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
