package models

import (
	"time"

	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
)

type Board struct {
	ID          uuid.UUID                 `gorm:"type:uuid;primaryKey"`
	PrismicID   string                    `gorm:"type:varchar(255);not null;index"`
	OwnerID     uuid.UUID                 `gorm:"type:uuid;not null;index"`
	CreatorID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Name        string                    `gorm:"type:varchar(255);not null"`
	Image       *string                   `gorm:"type:text"`
	Price       *int64                    // in cents
	Description *string                   `gorm:"type:text"`
	MintAddress string                    `gorm:"type:varchar(64);not null;uniqueIndex"`
	MetadataURI string                    `gorm:"type:text;not null"`
	Attributes  []entities.BoardAttribute `gorm:"serializer:json"`
	CreatedAt   time.Time
}
