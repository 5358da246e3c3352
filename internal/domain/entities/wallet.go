package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet represents an embedded custodial wallet
type Wallet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Address   string    `json:"address"`
	SealedKey string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TransferInput represents input for a SOL transfer
type TransferInput struct {
	ToAddress string  `json:"toAddress" binding:"required"`
	AmountSOL float64 `json:"amountSol" binding:"required,gt=0"`
}

// TransferResult is the outcome of a confirmed transfer
type TransferResult struct {
	TxSignature string `json:"txSignature"`
	ExplorerTx  string `json:"explorerTxUrl"`
}

// BalanceInfo reports a wallet's balance
type BalanceInfo struct {
	Address    string `json:"address"`
	Lamports   uint64 `json:"lamports"`
	BalanceSOL string `json:"balanceSol"`
}
