package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

// MintRecordRepository defines mint saga record operations
type MintRecordRepository interface {
	Create(ctx context.Context, record *entities.MintRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MintRecord, error)
	GetByMintAddress(ctx context.Context, mintAddress string) (*entities.MintRecord, error)
	// MarkSubmitted records the attempt's mint address and signature before
	// the transaction outcome is known.
	MarkSubmitted(ctx context.Context, id uuid.UUID, mintAddress, txSignature string, attempts int) error
	MarkMinted(ctx context.Context, id uuid.UUID, boardID uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error
	// ListStaleSubmitted returns SUBMITTED records not updated since the
	// cutoff, oldest first. Used by the reconciliation job.
	ListStaleSubmitted(ctx context.Context, cutoff time.Time, limit int) ([]*entities.MintRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MintRecord, int64, error)
}
