package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BoardAttribute is one trait/value pair of a minted board.
// Order is significant and preserved as stored.
type BoardAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Board represents a minted skateboard NFT record
type Board struct {
	ID          uuid.UUID        `json:"id"`
	PrismicID   string           `json:"prismicId"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	CreatorID   uuid.UUID        `json:"creatorId"`
	Name        string           `json:"name"`
	Image       null.String      `json:"image,omitempty"`
	Price       null.Int64       `json:"price,omitempty"` // in cents
	Description null.String      `json:"description,omitempty"`
	MintAddress string           `json:"mintAddress"`
	MetadataURI string           `json:"metadataUri"`
	Attributes  []BoardAttribute `json:"attributes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateBoardInput represents input for persisting a minted board
type CreateBoardInput struct {
	PrismicID   string
	OwnerID     uuid.UUID
	CreatorID   uuid.UUID
	Name        string
	Image       string
	Description string
	MintAddress string
	MetadataURI string
	Attributes  []BoardAttribute
}
