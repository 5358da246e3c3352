package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/stretchr/testify/require"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

const testIssuer = "https://auth.civic.com/oauth"

type tokenSigner struct {
	key    *rsa.PrivateKey
	keySet *jose.JSONWebKeySet
	signer jose.Signer
}

func newTokenSigner(t *testing.T) *tokenSigner {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", "test-key"),
	)
	require.NoError(t, err)

	return &tokenSigner{
		key: key,
		keySet: &jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
			Key:       key.Public(),
			KeyID:     "test-key",
			Algorithm: string(jose.RS256),
			Use:       "sig",
		}}},
		signer: signer,
	}
}

func (s *tokenSigner) sign(t *testing.T, claims jwt.Claims, custom map[string]interface{}) string {
	t.Helper()
	raw, err := jwt.Signed(s.signer).Claims(claims).Claims(custom).CompactSerialize()
	require.NoError(t, err)
	return raw
}

func TestVerifier_ValidToken(t *testing.T) {
	ts := newTokenSigner(t)
	verifier := NewVerifier(testIssuer, "http://unused.invalid/jwks")
	verifier.SetKeySet(ts.keySet)

	raw := ts.sign(t, jwt.Claims{
		Issuer:  testIssuer,
		Subject: "user-123",
		Expiry:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, map[string]interface{}{
		"email":          "tony@example.com",
		"name":           "Tony",
		"wallet_address": "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2",
	})

	ident, err := verifier.Verify(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, "user-123", ident.Subject)
	require.Equal(t, "tony@example.com", ident.Email)
	require.Equal(t, "Tony", ident.Name)
	require.Equal(t, "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2", ident.WalletAddress)
}

func TestVerifier_NoWalletClaim(t *testing.T) {
	ts := newTokenSigner(t)
	verifier := NewVerifier(testIssuer, "http://unused.invalid/jwks")
	verifier.SetKeySet(ts.keySet)

	raw := ts.sign(t, jwt.Claims{
		Issuer:  testIssuer,
		Subject: "user-123",
		Expiry:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, map[string]interface{}{"email": "tony@example.com"})

	ident, err := verifier.Verify(context.Background(), raw)
	require.NoError(t, err)
	require.Empty(t, ident.WalletAddress)
}

func TestVerifier_RejectsBadTokens(t *testing.T) {
	ts := newTokenSigner(t)
	verifier := NewVerifier(testIssuer, "http://unused.invalid/jwks")
	verifier.SetKeySet(ts.keySet)

	t.Run("expired", func(t *testing.T) {
		raw := ts.sign(t, jwt.Claims{
			Issuer:  testIssuer,
			Subject: "user-123",
			Expiry:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		}, map[string]interface{}{})
		_, err := verifier.Verify(context.Background(), raw)
		require.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw := ts.sign(t, jwt.Claims{
			Issuer:  "https://evil.example.com",
			Subject: "user-123",
			Expiry:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}, map[string]interface{}{})
		_, err := verifier.Verify(context.Background(), raw)
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := newTokenSigner(t)
		raw := other.sign(t, jwt.Claims{
			Issuer:  testIssuer,
			Subject: "user-123",
			Expiry:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}, map[string]interface{}{})
		_, err := verifier.Verify(context.Background(), raw)
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify(context.Background(), "not-a-jwt")
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestVerifier_FetchesJWKS(t *testing.T) {
	ts := newTokenSigner(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ts.keySet)
	}))
	t.Cleanup(srv.Close)

	verifier := NewVerifier(testIssuer, srv.URL)

	raw := ts.sign(t, jwt.Claims{
		Issuer:  testIssuer,
		Subject: "user-123",
		Expiry:  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, map[string]interface{}{"email": "tony@example.com"})

	ident, err := verifier.Verify(context.Background(), raw)
	require.NoError(t, err)
	require.Equal(t, "user-123", ident.Subject)
}

func TestVerifier_JWKSEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	verifier := NewVerifier(testIssuer, srv.URL)
	_, err := verifier.Verify(context.Background(), "anything")
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWKS")
}
