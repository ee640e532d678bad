package commands

import (
	"context"

	"github.com/google/uuid"
)

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	Status      string
	RequestHash string
	BookingID   *uuid.UUID
}

// IdempotencyStore guards booking submission against client retries.
type IdempotencyStore interface {
	// Reserve claims key for this request. A nil record means the caller owns
	// the key; otherwise the existing record is returned untouched.
	Reserve(ctx context.Context, key uuid.UUID, requestHash string) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, requestHash string, bookingID uuid.UUID) error
	Release(ctx context.Context, key uuid.UUID) error
}
