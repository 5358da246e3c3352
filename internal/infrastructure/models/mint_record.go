package models

import (
	"time"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

type MintRecord struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PrismicID   string                    `gorm:"type:varchar(255)"`
	Name        string                    `gorm:"type:varchar(255);not null"`
	Description string                    `gorm:"type:text"`
	Attributes  []entities.BoardAttribute `gorm:"serializer:json"`
	ImageURL    string                    `gorm:"type:text"`
	MetadataURI string                    `gorm:"type:text"`
	Status      string                    `gorm:"type:varchar(16);not null;index"`
	MintAddress *string                   `gorm:"type:varchar(64);index"`
	TxSignature *string                   `gorm:"type:varchar(128)"`
	Attempts    int                       `gorm:"default:0"`
	LastError   *string                   `gorm:"type:text"`
	BoardID     *uuid.UUID                `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}
