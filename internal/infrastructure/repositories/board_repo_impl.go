package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/models"
)

// BoardRepository implements board data operations
type BoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create persists a minted board. The unique index on mint_address makes
// a replayed insert for the same mint surface as ErrAlreadyExists.
func (r *BoardRepository) Create(ctx context.Context, board *entities.Board) error {
	m := &models.Board{
		ID:          board.ID,
		PrismicID:   board.PrismicID,
		OwnerID:     board.OwnerID,
		CreatorID:   board.CreatorID,
		Name:        board.Name,
		Image:       board.Image.Ptr(),
		Price:       board.Price.Ptr(),
		Description: board.Description.Ptr(),
		MintAddress: board.MintAddress,
		MetadataURI: board.MetadataURI,
		Attributes:  board.Attributes,
		CreatedAt:   board.CreatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a board by ID
func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Board, error) {
	var m models.Board
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByMint gets a board by its mint address
func (r *BoardRepository) GetByMint(ctx context.Context, mintAddress string) (*entities.Board, error) {
	var m models.Board
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("mint_address = ?", mintAddress).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDs returns the boards whose IDs exist. Missing IDs are skipped,
// not reported as errors.
func (r *BoardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Board, error) {
	if len(ids) == 0 {
		return []*entities.Board{}, nil
	}

	var boardModels []models.Board
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&boardModels).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entities.Board, len(boardModels))
	for _, m := range boardModels {
		model := m
		byID[m.ID] = r.toEntity(&model)
	}

	// Preserve the caller's ordering.
	boards := make([]*entities.Board, 0, len(byID))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			boards = append(boards, b)
		}
	}
	return boards, nil
}

// List lists boards newest first
func (r *BoardRepository) List(ctx context.Context, limit, offset int) ([]*entities.Board, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Board{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var boardModels []models.Board
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&boardModels).Error; err != nil {
		return nil, 0, err
	}

	boards := make([]*entities.Board, 0, len(boardModels))
	for _, m := range boardModels {
		model := m
		boards = append(boards, r.toEntity(&model))
	}
	return boards, total, nil
}

func (r *BoardRepository) toEntity(m *models.Board) *entities.Board {
	return &entities.Board{
		ID:          m.ID,
		PrismicID:   m.PrismicID,
		OwnerID:     m.OwnerID,
		CreatorID:   m.CreatorID,
		Name:        m.Name,
		Image:       null.StringFromPtr(m.Image),
		Price:       null.Int64FromPtr(m.Price),
		Description: null.StringFromPtr(m.Description),
		MintAddress: m.MintAddress,
		MetadataURI: m.MetadataURI,
		Attributes:  m.Attributes,
		CreatedAt:   m.CreatedAt,
	}
}
