package usecases

import (
	"context"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	"suburbia-skate.backend/internal/domain/repositories"
)

// BoardUsecase serves the minted board catalog and favorites
type BoardUsecase struct {
	boardRepo repositories.BoardRepository
	userRepo  repositories.UserRepository
}

// NewBoardUsecase creates a new board usecase
func NewBoardUsecase(boardRepo repositories.BoardRepository, userRepo repositories.UserRepository) *BoardUsecase {
	return &BoardUsecase{
		boardRepo: boardRepo,
		userRepo:  userRepo,
	}
}

// Get gets a board by ID
func (u *BoardUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Board, error) {
	return u.boardRepo.GetByID(ctx, id)
}

// GetByMint gets a board by its mint address
func (u *BoardUsecase) GetByMint(ctx context.Context, mintAddress string) (*entities.Board, error) {
	return u.boardRepo.GetByMint(ctx, mintAddress)
}

// List lists boards newest first
func (u *BoardUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.boardRepo.List(ctx, limit, offset)
}

// Favorite adds a board to the user's favorites. Read-then-append on the
// whole list; two concurrent favorites can drop one of the writes.
func (u *BoardUsecase) Favorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error) {
	if _, err := u.boardRepo.GetByID(ctx, boardID); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, id := range user.FavoriteBoards {
		if id == boardID {
			return user, nil
		}
	}

	favorites := append(user.FavoriteBoards, boardID)
	if err := u.userRepo.UpdateBoardLists(ctx, userID, user.OwnedBoards, user.CreatedBoards, favorites); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// Unfavorite removes a board from the user's favorites
func (u *BoardUsecase) Unfavorite(ctx context.Context, userID, boardID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	favorites := make([]uuid.UUID, 0, len(user.FavoriteBoards))
	for _, id := range user.FavoriteBoards {
		if id != boardID {
			favorites = append(favorites, id)
		}
	}
	if len(favorites) == len(user.FavoriteBoards) {
		return user, nil
	}

	if err := u.userRepo.UpdateBoardLists(ctx, userID, user.OwnedBoards, user.CreatedBoards, favorites); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}
