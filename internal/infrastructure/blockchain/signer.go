package blockchain

import (
	"github.com/gagliardetto/solana-go"
)

// Signer is the wallet capability the workflows depend on: a public key and
// the ability to sign a transaction. Custody details stay behind it.
type Signer interface {
	PublicKey() solana.PublicKey
	SignTransaction(tx *solana.Transaction) error
}

// KeypairSigner signs with an in-memory ed25519 private key
type KeypairSigner struct {
	key solana.PrivateKey
}

// NewKeypairSigner creates a signer from a private key
func NewKeypairSigner(key solana.PrivateKey) *KeypairSigner {
	return &KeypairSigner{key: key}
}

// PublicKey returns the signer's public key
func (s *KeypairSigner) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// SignTransaction adds this keypair's signature to the transaction
func (s *KeypairSigner) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.PartialSign(func(pk solana.PublicKey) *solana.PrivateKey {
		if pk.Equals(s.key.PublicKey()) {
			return &s.key
		}
		return nil
	})
	return err
}
