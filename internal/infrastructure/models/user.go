package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	WalletAddress  string      `gorm:"type:varchar(64);not null;uniqueIndex"`
	Username       string      `gorm:"type:varchar(255);not null;index"`
	Email          string      `gorm:"type:varchar(255);not null"`
	ProfileImage   *string     `gorm:"type:text"`
	Bio            *string     `gorm:"type:text"`
	FavoriteBoards []uuid.UUID `gorm:"serializer:json"`
	CreatedBoards  []uuid.UUID `gorm:"serializer:json"`
	OwnedBoards    []uuid.UUID `gorm:"serializer:json"`
	Followers      []uuid.UUID `gorm:"serializer:json"`
	Following      []uuid.UUID `gorm:"serializer:json"`
	Verified       bool        `gorm:"default:false"`
	XP             int64       `gorm:"default:0"`
	TotalSales     int64       `gorm:"default:0"`
	TotalPurchases int64       `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
