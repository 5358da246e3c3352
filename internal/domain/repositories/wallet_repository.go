package repositories

import (
	"context"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

// WalletRepository defines custodial wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetByAddress(ctx context.Context, address string) (*entities.Wallet, error)
}
