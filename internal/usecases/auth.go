package usecases

import (
	"context"
	"errors"
	"time"

	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/identity"
	"suburbia-skate.backend/pkg/crypto"
	"suburbia-skate.backend/pkg/jwt"
	"suburbia-skate.backend/pkg/redis"
)

// IdentityVerifier validates provider ID tokens
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*identity.Identity, error)
}

// AuthUsecase exchanges provider ID tokens for internal sessions
type AuthUsecase struct {
	verifier     IdentityVerifier
	profiles     *ProfileUsecase
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	verifier IdentityVerifier,
	profiles *ProfileUsecase,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		verifier:     verifier,
		profiles:     profiles,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Login verifies a provider ID token, upserts the user (provisioning an
// embedded wallet on first login), and issues internal credentials.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	ident, err := u.verifier.Verify(ctx, input.IDToken)
	if err != nil {
		return nil, err
	}
	if ident.Email == "" {
		return nil, domainerrors.NewError("provider token carries no email", domainerrors.ErrInvalidCredentials)
	}

	user, err := u.profiles.EnsureUser(ctx, ident)
	if err != nil {
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.WalletAddress, user.Email)
	if err != nil {
		return nil, err
	}

	resp := &entities.AuthResponse{User: user}
	if input.UseSession && u.sessionStore != nil {
		sessionID, err := crypto.GenerateRandomToken(32)
		if err != nil {
			return nil, err
		}
		data := &redis.SessionData{
			AccessToken:   pair.AccessToken,
			RefreshToken:  pair.RefreshToken,
			WalletAddress: user.WalletAddress,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, err
		}
		resp.SessionID = sessionID
		return resp, nil
	}

	resp.AccessToken = pair.AccessToken
	resp.RefreshToken = pair.RefreshToken
	return resp, nil
}

// Refresh exchanges a valid refresh token for a new pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := u.profiles.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.WalletAddress, user.Email)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Logout drops a stored session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessionStore == nil || sessionID == "" {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}
