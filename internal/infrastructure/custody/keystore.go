package custody

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/domain/repositories"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/pkg/crypto"
	"suburbia-skate.backend/pkg/utils"
)

// Custodian provisions and unlocks embedded wallets. Private keys are sealed
// at rest; only a Signer capability ever leaves this package.
type Custodian struct {
	walletRepo repositories.WalletRepository
	sealer     *crypto.KeySealer
}

// NewCustodian creates a new custodian
func NewCustodian(walletRepo repositories.WalletRepository, sealer *crypto.KeySealer) *Custodian {
	return &Custodian{
		walletRepo: walletRepo,
		sealer:     sealer,
	}
}

// EnsureWallet returns the user's wallet, provisioning a fresh keypair on
// first use. Safe to call repeatedly for the same user.
func (c *Custodian) EnsureWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := c.walletRepo.GetByUserID(ctx, userID)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	account := solana.NewWallet()
	sealed, err := c.sealer.Seal(account.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal wallet key: %w", err)
	}

	now := time.Now()
	wallet = &entities.Wallet{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Address:   account.PublicKey().String(),
		SealedKey: sealed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.walletRepo.Create(ctx, wallet); err != nil {
		// Lost a provisioning race: the winner's wallet is authoritative.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return c.walletRepo.GetByUserID(ctx, userID)
		}
		return nil, err
	}
	return wallet, nil
}

// SignerFor unlocks the user's wallet and returns its signing capability
func (c *Custodian) SignerFor(ctx context.Context, userID uuid.UUID) (blockchain.Signer, error) {
	wallet, err := c.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrNoWallet
		}
		return nil, err
	}

	keyBytes, err := c.sealer.Open(wallet.SealedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal wallet key: %w", err)
	}
	return blockchain.NewKeypairSigner(solana.PrivateKey(keyBytes)), nil
}
