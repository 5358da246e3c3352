package usecases

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/domain/repositories"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/infrastructure/identity"
	"suburbia-skate.backend/pkg/logger"
	"suburbia-skate.backend/pkg/utils"
)

// ProfileUsecase owns user records and the profile view
type ProfileUsecase struct {
	userRepo  repositories.UserRepository
	boardRepo repositories.BoardRepository
	custodian WalletCustodian
	funder    Funder
	chain     blockchain.Client
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(
	userRepo repositories.UserRepository,
	boardRepo repositories.BoardRepository,
	custodian WalletCustodian,
	funder Funder,
	chain blockchain.Client,
) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo:  userRepo,
		boardRepo: boardRepo,
		custodian: custodian,
		funder:    funder,
		chain:     chain,
	}
}

// EnsureUser upserts a user for a verified identity. A wallet claim on the
// token wins; otherwise an embedded wallet is provisioned on first login.
// Calling it again for the same identity returns the existing user.
func (u *ProfileUsecase) EnsureUser(ctx context.Context, ident *identity.Identity) (*entities.User, error) {
	if ident.WalletAddress != "" {
		user, err := u.userRepo.GetByWallet(ctx, ident.WalletAddress)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		return u.createUser(ctx, ident, ident.WalletAddress)
	}

	user, err := u.userRepo.GetByEmail(ctx, ident.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	// First login without a wallet claim: provision an embedded wallet,
	// then key the user by its address.
	userID := utils.GenerateUUIDv7()
	wallet, err := u.custodian.EnsureWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.createUserWithID(ctx, userID, ident, wallet.Address)
}

func (u *ProfileUsecase) createUser(ctx context.Context, ident *identity.Identity, walletAddress string) (*entities.User, error) {
	return u.createUserWithID(ctx, utils.GenerateUUIDv7(), ident, walletAddress)
}

func (u *ProfileUsecase) createUserWithID(ctx context.Context, id uuid.UUID, ident *identity.Identity, walletAddress string) (*entities.User, error) {
	now := time.Now()
	user := &entities.User{
		ID:             id,
		WalletAddress:  walletAddress,
		Username:       defaultUsername(ident.Name, walletAddress),
		Email:          ident.Email,
		FavoriteBoards: []uuid.UUID{},
		CreatedBoards:  []uuid.UUID{},
		OwnedBoards:    []uuid.UUID{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if ident.Picture != "" {
		user.ProfileImage = null.StringFrom(ident.Picture)
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		// Two first visits racing: the winner's row is the user.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return u.userRepo.GetByWallet(ctx, walletAddress)
		}
		return nil, err
	}
	return user, nil
}

// defaultUsername falls back to a wallet-derived handle
func defaultUsername(name, walletAddress string) string {
	if name != "" {
		return name
	}
	if len(walletAddress) >= 8 {
		return walletAddress[:8]
	}
	return walletAddress
}

// GetProfile resolves the user's board references and wallet balance. Board
// fetches run concurrently; references to deleted boards are dropped.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &entities.UserProfile{User: *user}

	var wg sync.WaitGroup
	var gatherErr error
	var mu sync.Mutex
	gather := func(ids []uuid.UUID, dst *[]*entities.Board) {
		defer wg.Done()
		boards, err := u.boardRepo.GetByIDs(ctx, ids)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			gatherErr = err
			return
		}
		*dst = boards
	}

	wg.Add(3)
	go gather(user.OwnedBoards, &profile.OwnedBoardItems)
	go gather(user.CreatedBoards, &profile.CreatedBoardItems)
	go gather(user.FavoriteBoards, &profile.FavoriteBoardItems)
	wg.Wait()
	if gatherErr != nil {
		return nil, gatherErr
	}

	u.attachBalance(ctx, profile)
	return profile, nil
}

// attachBalance reads the wallet balance and makes a best-effort funding
// attempt on an empty devnet wallet. Failures degrade the view, they do not
// fail it.
func (u *ProfileUsecase) attachBalance(ctx context.Context, profile *entities.UserProfile) {
	addr, err := solana.PublicKeyFromBase58(profile.WalletAddress)
	if err != nil {
		return
	}

	lamports, err := u.chain.Balance(ctx, addr)
	if err != nil {
		logger.Warn(ctx, "balance lookup failed", zap.String("address", profile.WalletAddress), zap.Error(err))
		return
	}

	if lamports == 0 {
		if err := u.funder.EnsureFunded(ctx, addr); err != nil {
			logger.Warn(ctx, "profile funding attempt failed", zap.Error(err))
			profile.FundingRequired = true
		} else if lamports, err = u.chain.Balance(ctx, addr); err != nil {
			return
		}
	}

	profile.BalanceSOL = FormatSOL(lamports)
}

// UpdateProfile updates the user's mutable profile fields
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, username, email string, bio, profileImage null.String) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if bio.Valid {
		user.Bio = bio
	}
	if profileImage.Valid {
		user.ProfileImage = profileImage
	}

	if err := u.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}
