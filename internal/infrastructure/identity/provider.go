package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

// Identity is the verified principal extracted from a provider ID token
type Identity struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	WalletAddress string // empty when the provider did not attach a wallet
}

type providerClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	WalletAddress string `json:"wallet_address"`
}

// Verifier validates hosted-identity-provider ID tokens against the
// provider's JWKS endpoint.
type Verifier struct {
	issuer     string
	jwksURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	keySet    *jose.JSONWebKeySet
	fetchedAt time.Time
	keyTTL    time.Duration
}

// NewVerifier creates a new token verifier
func NewVerifier(issuer, jwksURL string) *Verifier {
	return &Verifier{
		issuer:     issuer,
		jwksURL:    jwksURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		keyTTL:     time.Hour,
	}
}

// SetKeySet injects a static key set (used for testing)
func (v *Verifier) SetKeySet(ks *jose.JSONWebKeySet) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keySet = ks
	v.fetchedAt = time.Now()
}

// Verify validates the token signature, issuer and expiry, and returns the identity
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	keySet, err := v.keys(ctx)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseSigned(rawToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	var registered jwt.Claims
	var custom providerClaims
	if err := token.Claims(keySet, &registered, &custom); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if err := registered.Validate(jwt.Expected{
		Issuer: v.issuer,
		Time:   time.Now(),
	}); err != nil {
		if err == jwt.ErrExpired {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrInvalidCredentials
	}

	return &Identity{
		Subject:       registered.Subject,
		Email:         custom.Email,
		Name:          custom.Name,
		Picture:       custom.Picture,
		WalletAddress: custom.WalletAddress,
	}, nil
}

func (v *Verifier) keys(ctx context.Context) (*jose.JSONWebKeySet, error) {
	v.mu.RLock()
	if v.keySet != nil && time.Since(v.fetchedAt) < v.keyTTL {
		ks := v.keySet
		v.mu.RUnlock()
		return ks, nil
	}
	v.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider JWKS endpoint returned %d", resp.StatusCode)
	}

	var ks jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&ks); err != nil {
		return nil, fmt.Errorf("failed to decode provider JWKS: %w", err)
	}

	v.mu.Lock()
	v.keySet = &ks
	v.fetchedAt = time.Now()
	v.mu.Unlock()

	return &ks, nil
}
