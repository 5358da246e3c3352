package entities

import (
	"time"

	"github.com/google/uuid"
)

// MintStatus represents the state of a mint saga record
type MintStatus string

const (
	// MintStatusUploaded means image and metadata are stored off-chain,
	// no transaction has been broadcast yet.
	MintStatusUploaded MintStatus = "UPLOADED"
	// MintStatusSubmitted means a mint transaction has been broadcast and
	// may or may not have landed on chain.
	MintStatusSubmitted MintStatus = "SUBMITTED"
	// MintStatusMinted means the mint is confirmed and the board record exists.
	MintStatusMinted MintStatus = "MINTED"
	// MintStatusFailed is terminal: all attempts exhausted or funding denied.
	MintStatusFailed MintStatus = "FAILED"
)

// MintRecord is the durable saga state for one mint workflow run.
// It is written before the transaction is broadcast so that a mint confirmed
// on chain can always be reconciled into the database afterwards.
type MintRecord struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	PrismicID   string           `json:"prismicId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Attributes  []BoardAttribute `json:"attributes,omitempty"`
	ImageURL    string           `json:"imageUrl"`
	MetadataURI string           `json:"metadataUri"`
	Status      MintStatus       `json:"status"`
	MintAddress string           `json:"mintAddress,omitempty"`
	TxSignature string           `json:"txSignature,omitempty"`
	Attempts    int              `json:"attempts"`
	LastError   string           `json:"lastError,omitempty"`
	BoardID     *uuid.UUID       `json:"boardId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// MintInput represents input for the mint workflow
type MintInput struct {
	PrismicID   string           `json:"prismicId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageData   string           `json:"imageData" binding:"required"` // data URL or raw base64 PNG
	Attributes  []BoardAttribute `json:"attributes"`
}

// MintResult is the outcome of a successful mint-and-persist cycle
type MintResult struct {
	RecordID     uuid.UUID `json:"recordId"`
	BoardID      uuid.UUID `json:"boardId"`
	MintAddress  string    `json:"mintAddress"`
	MetadataURI  string    `json:"metadataUri"`
	ImageURL     string    `json:"imageUrl"`
	TxSignature  string    `json:"txSignature"`
	ExplorerMint string    `json:"explorerMintUrl"`
	ExplorerTx   string    `json:"explorerTxUrl"`
}
