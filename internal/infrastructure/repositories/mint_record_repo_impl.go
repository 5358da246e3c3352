package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/models"
)

// MintRecordRepository implements mint saga record operations
type MintRecordRepository struct {
	db *gorm.DB
}

// NewMintRecordRepository creates a new mint record repository
func NewMintRecordRepository(db *gorm.DB) *MintRecordRepository {
	return &MintRecordRepository{db: db}
}

// Create creates a new mint record
func (r *MintRecordRepository) Create(ctx context.Context, record *entities.MintRecord) error {
	m := &models.MintRecord{
		ID:          record.ID,
		UserID:      record.UserID,
		PrismicID:   record.PrismicID,
		Name:        record.Name,
		Description: record.Description,
		Attributes:  record.Attributes,
		ImageURL:    record.ImageURL,
		MetadataURI: record.MetadataURI,
		Status:      string(record.Status),
		Attempts:    record.Attempts,
		BoardID:     record.BoardID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	if record.MintAddress != "" {
		m.MintAddress = &record.MintAddress
	}
	if record.TxSignature != "" {
		m.TxSignature = &record.TxSignature
	}
	if record.LastError != "" {
		m.LastError = &record.LastError
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a mint record by ID
func (r *MintRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MintRecord, error) {
	var m models.MintRecord
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByMintAddress gets a mint record by the mint account address
func (r *MintRecordRepository) GetByMintAddress(ctx context.Context, mintAddress string) (*entities.MintRecord, error) {
	var m models.MintRecord
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("mint_address = ?", mintAddress).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// MarkSubmitted records the attempt's mint address and signature before the
// transaction outcome is known
func (r *MintRecordRepository) MarkSubmitted(ctx context.Context, id uuid.UUID, mintAddress, txSignature string, attempts int) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":       string(entities.MintStatusSubmitted),
		"mint_address": mintAddress,
		"tx_signature": txSignature,
		"attempts":     attempts,
		"updated_at":   time.Now(),
	})
}

// MarkMinted finalizes a record after the board row exists
func (r *MintRecordRepository) MarkMinted(ctx context.Context, id uuid.UUID, boardID uuid.UUID) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     string(entities.MintStatusMinted),
		"board_id":   boardID,
		"updated_at": time.Now(),
	})
}

// MarkFailed marks a record as terminally failed
func (r *MintRecordRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	return r.update(ctx, id, map[string]interface{}{
		"status":     string(entities.MintStatusFailed),
		"last_error": lastError,
		"updated_at": time.Now(),
	})
}

func (r *MintRecordRepository) update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MintRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListStaleSubmitted returns SUBMITTED records not updated since the cutoff,
// oldest first
func (r *MintRecordRepository) ListStaleSubmitted(ctx context.Context, cutoff time.Time, limit int) ([]*entities.MintRecord, error) {
	var recordModels []models.MintRecord
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ? AND updated_at < ?", string(entities.MintStatusSubmitted), cutoff).
		Order("updated_at ASC").
		Limit(limit).
		Find(&recordModels).Error
	if err != nil {
		return nil, err
	}

	records := make([]*entities.MintRecord, 0, len(recordModels))
	for _, m := range recordModels {
		model := m
		records = append(records, r.toEntity(&model))
	}
	return records, nil
}

// ListByUser lists a user's mint records newest first
func (r *MintRecordRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MintRecord, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MintRecord{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recordModels []models.MintRecord
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*entities.MintRecord, 0, len(recordModels))
	for _, m := range recordModels {
		model := m
		records = append(records, r.toEntity(&model))
	}
	return records, total, nil
}

func (r *MintRecordRepository) toEntity(m *models.MintRecord) *entities.MintRecord {
	e := &entities.MintRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		PrismicID:   m.PrismicID,
		Name:        m.Name,
		Description: m.Description,
		Attributes:  m.Attributes,
		ImageURL:    m.ImageURL,
		MetadataURI: m.MetadataURI,
		Status:      entities.MintStatus(m.Status),
		Attempts:    m.Attempts,
		BoardID:     m.BoardID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.MintAddress != nil {
		e.MintAddress = *m.MintAddress
	}
	if m.TxSignature != nil {
		e.TxSignature = *m.TxSignature
	}
	if m.LastError != nil {
		e.LastError = *m.LastError
	}
	return e
}
