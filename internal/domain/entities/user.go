package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents a storefront user keyed by wallet address
type User struct {
	ID             uuid.UUID   `json:"id"`
	WalletAddress  string      `json:"walletAddress"`
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	ProfileImage   null.String `json:"profileImage,omitempty"`
	Bio            null.String `json:"bio,omitempty"`
	FavoriteBoards []uuid.UUID `json:"favoriteBoards"`
	CreatedBoards  []uuid.UUID `json:"createdBoards"`
	OwnedBoards    []uuid.UUID `json:"ownedBoards"`
	Followers      []uuid.UUID `json:"followers,omitempty"`
	Following      []uuid.UUID `json:"following,omitempty"`
	Verified       bool        `json:"verified"`
	XP             int64       `json:"xp"`
	TotalSales     int64       `json:"totalSales"`
	TotalPurchases int64       `json:"totalPurchases"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	AvatarURL     string `json:"avatarUrl"`
}

// UserProfile is a user with board references resolved
type UserProfile struct {
	User
	OwnedBoardItems    []*Board `json:"ownedBoards"`
	CreatedBoardItems  []*Board `json:"createdBoards"`
	FavoriteBoardItems []*Board `json:"favoriteBoards"`
	BalanceSOL         string   `json:"balanceSol,omitempty"`
	FundingRequired    bool     `json:"fundingRequired,omitempty"`
}

// LoginInput represents input for signing in with a provider ID token
type LoginInput struct {
	IDToken    string `json:"idToken" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}
