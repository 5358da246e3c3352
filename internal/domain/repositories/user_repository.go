package repositories

import (
	"context"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateBoardLists overwrites the denormalized board reference arrays.
	// Callers read the current arrays, append, then write back; two
	// concurrent writers can lose an update.
	UpdateBoardLists(ctx context.Context, id uuid.UUID, owned, created, favorites []uuid.UUID) error
	UpdateProfile(ctx context.Context, user *entities.User) error
}
