package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Address   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	SealedKey string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
