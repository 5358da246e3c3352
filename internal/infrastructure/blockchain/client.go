package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client provides the chain surface the mint and funding workflows need.
// It is an interface so usecases and jobs can run against a fake in tests.
type Client interface {
	// Balance returns the lamport balance of an address
	Balance(ctx context.Context, addr solana.PublicKey) (uint64, error)
	// RequestAirdrop requests test funds (devnet only)
	RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error)
	// LatestBlockhash returns a recent blockhash and its last valid block height
	LatestBlockhash(ctx context.Context) (solana.Hash, uint64, error)
	// MinimumBalanceForRentExemption returns the rent-exempt minimum for an account of the given size
	MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
	// SendTransaction submits a signed transaction with preflight enabled at confirmed commitment
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	// ConfirmTransaction blocks until the signature reaches confirmed commitment
	// or the blockhash expires past lastValidBlockHeight
	ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error
	// SignatureConfirmed reports whether a historical signature landed successfully
	SignatureConfirmed(ctx context.Context, sig solana.Signature) (bool, error)
}

var dialRPCClient = rpc.New

// RPCClient is the Solana JSON-RPC implementation of Client
type RPCClient struct {
	rpc            *rpc.Client
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// NewRPCClient creates a new Solana RPC client
func NewRPCClient(rpcURL string, confirmTimeout time.Duration) *RPCClient {
	return &RPCClient{
		rpc:            dialRPCClient(rpcURL),
		confirmTimeout: confirmTimeout,
		pollInterval:   500 * time.Millisecond,
	}
}

// Balance returns the lamport balance at confirmed commitment
func (c *RPCClient) Balance(ctx context.Context, addr solana.PublicKey) (uint64, error) {
	out, err := c.rpc.GetBalance(ctx, addr, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, err
	}
	return out.Value, nil
}

// RequestAirdrop requests test funds for an address
func (c *RPCClient) RequestAirdrop(ctx context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	return c.rpc.RequestAirdrop(ctx, addr, lamports, rpc.CommitmentConfirmed)
}

// LatestBlockhash fetches a fresh blockhash
func (c *RPCClient) LatestBlockhash(ctx context.Context) (solana.Hash, uint64, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Hash{}, 0, err
	}
	return out.Value.Blockhash, out.Value.LastValidBlockHeight, nil
}

// MinimumBalanceForRentExemption returns the rent-exempt minimum
func (c *RPCClient) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	return c.rpc.GetMinimumBalanceForRentExemption(ctx, size, rpc.CommitmentConfirmed)
}

// SendTransaction submits a signed transaction
func (c *RPCClient) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	return c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
}

// ConfirmTransaction polls signature status until confirmed, expired, or timed out
func (c *RPCClient) ConfirmTransaction(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation timed out for %s: %w", sig, ctx.Err())
		case <-ticker.C:
			statuses, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
			if err != nil {
				continue // transient RPC error, keep polling
			}
			if len(statuses.Value) > 0 && statuses.Value[0] != nil {
				status := statuses.Value[0]
				if status.Err != nil {
					return fmt.Errorf("transaction %s failed on chain: %v", sig, status.Err)
				}
				if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
					status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
					return nil
				}
				continue
			}

			// Not seen yet: check whether the blockhash has expired.
			height, err := c.rpc.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
			if err != nil {
				continue
			}
			if height > lastValidBlockHeight {
				return fmt.Errorf("blockhash expired before transaction %s was confirmed", sig)
			}
		}
	}
}

// SignatureConfirmed checks transaction history for a past signature
func (c *RPCClient) SignatureConfirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	statuses, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return false, err
	}
	if len(statuses.Value) == 0 || statuses.Value[0] == nil {
		return false, nil
	}
	status := statuses.Value[0]
	if status.Err != nil {
		return false, nil
	}
	return status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
		status.ConfirmationStatus == rpc.ConfirmationStatusFinalized, nil
}
