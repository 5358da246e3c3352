package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:             user.ID,
		WalletAddress:  user.WalletAddress,
		Username:       user.Username,
		Email:          user.Email,
		ProfileImage:   user.ProfileImage.Ptr(),
		Bio:            user.Bio.Ptr(),
		FavoriteBoards: user.FavoriteBoards,
		CreatedBoards:  user.CreatedBoards,
		OwnedBoards:    user.OwnedBoards,
		Followers:      user.Followers,
		Following:      user.Following,
		Verified:       user.Verified,
		XP:             user.XP,
		TotalSales:     user.TotalSales,
		TotalPurchases: user.TotalPurchases,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByWallet gets a user by wallet address
func (r *UserRepository) GetByWallet(ctx context.Context, walletAddress string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateBoardLists overwrites the denormalized board reference arrays.
// Struct-based Updates so the json serializer applies to the slices.
func (r *UserRepository) UpdateBoardLists(ctx context.Context, id uuid.UUID, owned, created, favorites []uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Select("owned_boards", "created_boards", "favorite_boards", "updated_at").
		Updates(&models.User{
			OwnedBoards:    owned,
			CreatedBoards:  created,
			FavoriteBoards: favorites,
			UpdatedAt:      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateProfile updates mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"username":   user.Username,
		"email":      user.Email,
		"updated_at": time.Now(),
	}
	if user.ProfileImage.Valid {
		updates["profile_image"] = user.ProfileImage.String
	}
	if user.Bio.Valid {
		updates["bio"] = user.Bio.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) toEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:             m.ID,
		WalletAddress:  m.WalletAddress,
		Username:       m.Username,
		Email:          m.Email,
		ProfileImage:   null.StringFromPtr(m.ProfileImage),
		Bio:            null.StringFromPtr(m.Bio),
		FavoriteBoards: m.FavoriteBoards,
		CreatedBoards:  m.CreatedBoards,
		OwnedBoards:    m.OwnedBoards,
		Followers:      m.Followers,
		Following:      m.Following,
		Verified:       m.Verified,
		XP:             m.XP,
		TotalSales:     m.TotalSales,
		TotalPurchases: m.TotalPurchases,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// isUniqueViolation matches unique constraint errors from both postgres
// and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
