package repositories

import (
	"context"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

// BoardRepository defines board (minted NFT) data operations
type BoardRepository interface {
	Create(ctx context.Context, board *entities.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Board, error)
	GetByMint(ctx context.Context, mintAddress string) (*entities.Board, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Board, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error)
}
