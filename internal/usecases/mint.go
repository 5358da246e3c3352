package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/domain/repositories"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/usecases/metrics"
	"suburbia-skate.backend/pkg/logger"
	"suburbia-skate.backend/pkg/utils"
)

// WalletCustodian is the custody surface the workflows depend on
type WalletCustodian interface {
	EnsureWallet(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	SignerFor(ctx context.Context, userID uuid.UUID) (blockchain.Signer, error)
}

// Funder makes sure a wallet can pay for a transaction before one is built
type Funder interface {
	EnsureFunded(ctx context.Context, addr solana.PublicKey) error
}

// mintAttempt is the outcome of a single mint try. Every attempt gets its
// own asset keypair, so a failed attempt's address never leaks into the next.
type mintAttempt struct {
	Attempt     int
	MintAddress solana.PublicKey
	Signature   solana.Signature
	Err         error
}

// MintUsecase runs the full capture-validate, upload, mint, persist workflow
// as a saga: durable record first, broadcast second, finalize last.
type MintUsecase struct {
	capture   *CaptureValidator
	uploader  *AssetUploader
	chain     blockchain.Client
	custodian WalletCustodian
	funder    Funder
	mintRepo  repositories.MintRecordRepository
	boardRepo repositories.BoardRepository
	userRepo  repositories.UserRepository
	uow       repositories.UnitOfWork

	cluster     string
	maxAttempts int
	backoffBase time.Duration
	sleep       func(time.Duration)
}

// NewMintUsecase creates a new mint usecase
func NewMintUsecase(
	capture *CaptureValidator,
	uploader *AssetUploader,
	chain blockchain.Client,
	custodian WalletCustodian,
	funder Funder,
	mintRepo repositories.MintRecordRepository,
	boardRepo repositories.BoardRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	cluster string,
	maxAttempts int,
	backoffBase time.Duration,
) *MintUsecase {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if backoffBase <= 0 {
		backoffBase = 500 * time.Millisecond
	}
	return &MintUsecase{
		capture:     capture,
		uploader:    uploader,
		chain:       chain,
		custodian:   custodian,
		funder:      funder,
		mintRepo:    mintRepo,
		boardRepo:   boardRepo,
		userRepo:    userRepo,
		uow:         uow,
		cluster:     cluster,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		sleep:       time.Sleep,
	}
}

// Mint validates the capture, uploads the asset pair, mints on chain with
// retries, and persists the result.
func (u *MintUsecase) Mint(ctx context.Context, userID uuid.UUID, input *entities.MintInput) (*entities.MintResult, error) {
	image, err := u.capture.Validate(input.ImageData)
	if err != nil {
		return nil, err
	}

	signer, err := u.custodian.SignerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.funder.EnsureFunded(ctx, signer.PublicKey()); err != nil {
		return nil, err
	}

	uploaded, err := u.uploader.Upload(ctx, input.Name, input.Description, image, input.Attributes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entities.MintRecord{
		ID:          utils.GenerateUUIDv7(),
		UserID:      userID,
		PrismicID:   input.PrismicID,
		Name:        input.Name,
		Description: input.Description,
		Attributes:  input.Attributes,
		ImageURL:    uploaded.ImageURL,
		MetadataURI: uploaded.MetadataURI,
		Status:      entities.MintStatusUploaded,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.mintRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	attempt, err := u.mintWithRetries(ctx, record, signer)
	if err != nil {
		metrics.MintAttemptsTotal.WithLabelValues("failed").Inc()
		if markErr := u.mintRepo.MarkFailed(ctx, record.ID, err.Error()); markErr != nil {
			logger.Error(ctx, "failed to mark mint record failed", zap.Error(markErr))
		}
		return nil, domainerrors.NewError("mint failed after all attempts", domainerrors.ErrMintFailed)
	}
	metrics.MintAttemptsTotal.WithLabelValues("confirmed").Inc()

	record.MintAddress = attempt.MintAddress.String()
	record.TxSignature = attempt.Signature.String()
	record.Attempts = attempt.Attempt
	record.Status = entities.MintStatusSubmitted

	if err := u.FinalizeRecord(ctx, record); err != nil {
		// The asset exists on chain; the reconciler owns it from here.
		logger.Error(ctx, "mint confirmed but persistence failed",
			zap.String("mint_address", record.MintAddress),
			zap.Error(err))
		return nil, domainerrors.NewError("mint confirmed but could not be saved", domainerrors.ErrStateDiverged)
	}

	final, err := u.mintRepo.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	result := &entities.MintResult{
		RecordID:     record.ID,
		MintAddress:  record.MintAddress,
		MetadataURI:  record.MetadataURI,
		ImageURL:     record.ImageURL,
		TxSignature:  record.TxSignature,
		ExplorerMint: blockchain.ExplorerAddressURL(u.cluster, record.MintAddress),
		ExplorerTx:   blockchain.ExplorerTxURL(u.cluster, record.TxSignature),
	}
	if final.BoardID != nil {
		result.BoardID = *final.BoardID
	}
	return result, nil
}

// mintWithRetries drives the attempt loop. Linear backoff between attempts;
// the returned attempt is the successful one.
func (u *MintUsecase) mintWithRetries(ctx context.Context, record *entities.MintRecord, signer blockchain.Signer) (*mintAttempt, error) {
	var last *mintAttempt
	for i := 1; i <= u.maxAttempts; i++ {
		attempt := u.attemptMint(ctx, record, signer, i)
		if attempt.Err == nil {
			return attempt, nil
		}
		last = attempt
		logger.Warn(ctx, "mint attempt failed",
			zap.Int("attempt", i),
			zap.String("mint_address", attempt.MintAddress.String()),
			zap.Error(attempt.Err))

		if i < u.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			u.sleep(time.Duration(i) * u.backoffBase)
		}
	}
	return nil, fmt.Errorf("attempt %d: %w", last.Attempt, last.Err)
}

func (u *MintUsecase) attemptMint(ctx context.Context, record *entities.MintRecord, signer blockchain.Signer, n int) *mintAttempt {
	assetAccount := solana.NewWallet()
	attempt := &mintAttempt{
		Attempt:     n,
		MintAddress: assetAccount.PublicKey(),
	}

	blockhash, lastValidBlockHeight, err := u.chain.LatestBlockhash(ctx)
	if err != nil {
		attempt.Err = fmt.Errorf("failed to fetch blockhash: %w", err)
		return attempt
	}

	tx, err := blockchain.BuildMintTransaction(ctx, u.chain, signer.PublicKey(), assetAccount.PublicKey(), signer.PublicKey(), blockhash)
	if err != nil {
		attempt.Err = err
		return attempt
	}

	if err := signer.SignTransaction(tx); err != nil {
		attempt.Err = fmt.Errorf("payer signature failed: %w", err)
		return attempt
	}
	if err := blockchain.NewKeypairSigner(assetAccount.PrivateKey).SignTransaction(tx); err != nil {
		attempt.Err = fmt.Errorf("asset signature failed: %w", err)
		return attempt
	}
	attempt.Signature = tx.Signatures[0]

	// Durable before broadcast: if we crash past this point the reconciler
	// can still find the transaction.
	if err := u.mintRepo.MarkSubmitted(ctx, record.ID, attempt.MintAddress.String(), attempt.Signature.String(), n); err != nil {
		attempt.Err = err
		return attempt
	}

	if _, err := u.chain.SendTransaction(ctx, tx); err != nil {
		attempt.Err = fmt.Errorf("broadcast failed: %w", err)
		return attempt
	}

	if err := u.chain.ConfirmTransaction(ctx, attempt.Signature, lastValidBlockHeight); err != nil {
		attempt.Err = fmt.Errorf("confirmation failed: %w", err)
		return attempt
	}

	return attempt
}

// FinalizeRecord persists a confirmed mint: board row plus the owner's
// profile list append, in one transaction. Idempotent by mint address, so
// both the direct path and the reconciler can call it.
func (u *MintUsecase) FinalizeRecord(ctx context.Context, record *entities.MintRecord) error {
	if record.MintAddress == "" {
		return domainerrors.ErrInvalidInput
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.boardRepo.GetByMint(txCtx, record.MintAddress)
		if err == nil {
			return u.markMintedIfNeeded(txCtx, record, existing.ID)
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		board := &entities.Board{
			ID:          utils.GenerateUUIDv7(),
			PrismicID:   record.PrismicID,
			OwnerID:     record.UserID,
			CreatorID:   record.UserID,
			Name:        record.Name,
			Image:       null.StringFrom(record.ImageURL),
			Description: null.StringFrom(record.Description),
			MintAddress: record.MintAddress,
			MetadataURI: record.MetadataURI,
			Attributes:  record.Attributes,
			CreatedAt:   time.Now(),
		}
		if err := u.boardRepo.Create(txCtx, board); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				// A concurrent finalize won the insert.
				winner, lookupErr := u.boardRepo.GetByMint(txCtx, record.MintAddress)
				if lookupErr != nil {
					return lookupErr
				}
				return u.markMintedIfNeeded(txCtx, record, winner.ID)
			}
			return err
		}

		user, err := u.userRepo.GetByID(txCtx, record.UserID)
		if err != nil {
			return err
		}
		owned := append(user.OwnedBoards, board.ID)
		created := append(user.CreatedBoards, board.ID)
		if err := u.userRepo.UpdateBoardLists(txCtx, user.ID, owned, created, user.FavoriteBoards); err != nil {
			return err
		}

		return u.mintRepo.MarkMinted(txCtx, record.ID, board.ID)
	})
}

func (u *MintUsecase) markMintedIfNeeded(ctx context.Context, record *entities.MintRecord, boardID uuid.UUID) error {
	current, err := u.mintRepo.GetByID(ctx, record.ID)
	if err != nil {
		return err
	}
	if current.Status == entities.MintStatusMinted {
		return nil
	}
	return u.mintRepo.MarkMinted(ctx, record.ID, boardID)
}

// ListRecords lists a user's mint history
func (u *MintUsecase) ListRecords(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MintRecord, int64, error) {
	return u.mintRepo.ListByUser(ctx, userID, limit, offset)
}
