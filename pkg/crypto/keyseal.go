package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	// Standard interactive scrypt parameters.
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

var randomRead = rand.Read

// KeySealer seals and opens secret key material with a passphrase-derived key.
// The sealed format is hex(salt || nonce || ciphertext).
type KeySealer struct {
	passphrase []byte
}

// NewKeySealer creates a new key sealer
func NewKeySealer(passphrase string) (*KeySealer, error) {
	if passphrase == "" {
		return nil, errors.New("keystore passphrase must not be empty")
	}
	return &KeySealer{passphrase: []byte(passphrase)}, nil
}

// Seal encrypts the given key material
func (s *KeySealer) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := randomRead(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	gcm, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := append(salt, gcm.Seal(nonce, nonce, plaintext, nil)...)
	return hex.EncodeToString(sealed), nil
}

// Open decrypts key material previously produced by Seal
func (s *KeySealer) Open(sealedHex string) ([]byte, error) {
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return nil, err
	}
	if len(sealed) < saltLen {
		return nil, errors.New("sealed key too short")
	}

	salt, rest := sealed[:saltLen], sealed[saltLen:]
	gcm, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	if len(rest) < gcm.NonceSize() {
		return nil, errors.New("sealed key too short")
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (s *KeySealer) aead(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// GenerateRandomToken generates a random token of specified byte length
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
