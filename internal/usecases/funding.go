package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/usecases/metrics"
	"suburbia-skate.backend/pkg/logger"
)

const lamportsPerSOL = 1_000_000_000

// FundingUsecase keeps devnet wallets solvent: balance reads and the
// zero-balance airdrop routine.
type FundingUsecase struct {
	chain     blockchain.Client
	custodian WalletCustodian

	airdropLamports uint64
	airdropAttempts int
	sleep           func(time.Duration)
}

// NewFundingUsecase creates a new funding usecase
func NewFundingUsecase(chain blockchain.Client, custodian WalletCustodian, airdropLamports uint64, airdropAttempts int) *FundingUsecase {
	if airdropAttempts <= 0 {
		airdropAttempts = 3
	}
	if airdropLamports == 0 {
		airdropLamports = lamportsPerSOL
	}
	return &FundingUsecase{
		chain:           chain,
		custodian:       custodian,
		airdropLamports: airdropLamports,
		airdropAttempts: airdropAttempts,
		sleep:           time.Sleep,
	}
}

// Balance returns the user's wallet balance
func (u *FundingUsecase) Balance(ctx context.Context, userID uuid.UUID) (*entities.BalanceInfo, error) {
	wallet, err := u.custodian.EnsureWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		return nil, err
	}
	lamports, err := u.chain.Balance(ctx, addr)
	if err != nil {
		return nil, err
	}

	return &entities.BalanceInfo{
		Address:    wallet.Address,
		Lamports:   lamports,
		BalanceSOL: FormatSOL(lamports),
	}, nil
}

// Airdrop funds the user's wallet regardless of current balance
func (u *FundingUsecase) Airdrop(ctx context.Context, userID uuid.UUID) (*entities.BalanceInfo, error) {
	wallet, err := u.custodian.EnsureWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	addr, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		return nil, err
	}

	if err := u.airdrop(ctx, addr); err != nil {
		return nil, err
	}

	lamports, err := u.chain.Balance(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &entities.BalanceInfo{
		Address:    wallet.Address,
		Lamports:   lamports,
		BalanceSOL: FormatSOL(lamports),
	}, nil
}

// EnsureFunded airdrops only when the balance is zero. A non-zero balance is
// assumed sufficient; the transaction itself reports underfunding.
func (u *FundingUsecase) EnsureFunded(ctx context.Context, addr solana.PublicKey) error {
	lamports, err := u.chain.Balance(ctx, addr)
	if err != nil {
		return err
	}
	if lamports > 0 {
		return nil
	}
	return u.airdrop(ctx, addr)
}

// airdrop requests devnet funds, retrying immediately without backoff. The
// faucet either serves a request or rate-limits it; waiting does not help.
func (u *FundingUsecase) airdrop(ctx context.Context, addr solana.PublicKey) error {
	var lastErr error
	for i := 1; i <= u.airdropAttempts; i++ {
		sig, err := u.chain.RequestAirdrop(ctx, addr, u.airdropLamports)
		if err != nil {
			lastErr = err
			logger.Warn(ctx, "airdrop request failed",
				zap.Int("attempt", i),
				zap.String("address", addr.String()),
				zap.Error(err))
			continue
		}

		confirmed, err := u.waitForAirdrop(ctx, sig)
		if err != nil {
			lastErr = err
			continue
		}
		if confirmed {
			metrics.AirdropsTotal.WithLabelValues("ok").Inc()
			logger.Info(ctx, "airdrop confirmed",
				zap.String("address", addr.String()),
				zap.String("signature", sig.String()))
			return nil
		}
		lastErr = fmt.Errorf("airdrop signature %s never confirmed", sig)
	}

	metrics.AirdropsTotal.WithLabelValues("failed").Inc()
	return domainerrors.NewAppError(402, "devnet faucet unavailable, wallet unfunded",
		fmt.Errorf("%w: %v", domainerrors.ErrFundingRequired, lastErr))
}

func (u *FundingUsecase) waitForAirdrop(ctx context.Context, sig solana.Signature) (bool, error) {
	// Airdrops carry no blockhash we control, so poll signature status
	// directly instead of ConfirmTransaction.
	for i := 0; i < 30; i++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}
		ok, err := u.chain.SignatureConfirmed(ctx, sig)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		u.sleep(500 * time.Millisecond)
	}
	return false, nil
}

// FormatSOL renders lamports as a SOL decimal string
func FormatSOL(lamports uint64) string {
	return decimal.NewFromUint64(lamports).
		Div(decimal.NewFromInt(lamportsPerSOL)).
		String()
}
