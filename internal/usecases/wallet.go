package usecases

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
)

// WalletUsecase performs SOL transfers from the custodial wallet
type WalletUsecase struct {
	chain     blockchain.Client
	custodian WalletCustodian
	cluster   string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(chain blockchain.Client, custodian WalletCustodian, cluster string) *WalletUsecase {
	return &WalletUsecase{
		chain:     chain,
		custodian: custodian,
		cluster:   cluster,
	}
}

// Transfer sends SOL from the user's wallet and waits for confirmation
func (u *WalletUsecase) Transfer(ctx context.Context, userID uuid.UUID, input *entities.TransferInput) (*entities.TransferResult, error) {
	to, err := solana.PublicKeyFromBase58(input.ToAddress)
	if err != nil {
		return nil, domainerrors.NewError("invalid destination address", domainerrors.ErrInvalidInput)
	}

	lamports, err := solToLamports(input.AmountSOL)
	if err != nil {
		return nil, err
	}

	signer, err := u.custodian.SignerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	from := signer.PublicKey()

	balance, err := u.chain.Balance(ctx, from)
	if err != nil {
		return nil, err
	}
	if balance < lamports {
		return nil, domainerrors.NewAppError(402,
			fmt.Sprintf("insufficient balance: have %s SOL, need %s SOL", FormatSOL(balance), FormatSOL(lamports)),
			domainerrors.ErrFundingRequired)
	}

	blockhash, lastValidBlockHeight, err := u.chain.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := blockchain.BuildTransferTransaction(lamports, from, to, blockhash)
	if err != nil {
		return nil, err
	}
	if err := signer.SignTransaction(tx); err != nil {
		return nil, err
	}

	sig, err := u.chain.SendTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := u.chain.ConfirmTransaction(ctx, sig, lastValidBlockHeight); err != nil {
		return nil, err
	}

	return &entities.TransferResult{
		TxSignature: sig.String(),
		ExplorerTx:  blockchain.ExplorerTxURL(u.cluster, sig.String()),
	}, nil
}

// solToLamports converts a SOL amount without float drift
func solToLamports(amount float64) (uint64, error) {
	lamports := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(lamportsPerSOL)).IntPart()
	if lamports <= 0 {
		return 0, domainerrors.NewError("transfer amount too small", domainerrors.ErrInvalidInput)
	}
	return uint64(lamports), nil
}
