package blockchain

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// mintAccountSize is the SPL token mint account layout size in bytes.
const mintAccountSize = 82

// BuildMintTransaction builds an unsigned transaction that creates a new
// one-of-one token: create the mint account, initialize it with zero decimals,
// create the recipient's associated token account, and mint the single unit.
// The mint account keypair and the payer must both sign.
func BuildMintTransaction(
	ctx context.Context,
	client Client,
	payer solana.PublicKey,
	mint solana.PublicKey,
	recipient solana.PublicKey,
	blockhash solana.Hash,
) (*solana.Transaction, error) {
	rent, err := client.MinimumBalanceForRentExemption(ctx, mintAccountSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rent-exempt minimum: %w", err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(recipient, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive associated token address: %w", err)
	}

	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			rent,
			mintAccountSize,
			solana.TokenProgramID,
			payer,
			mint,
		).Build(),
		token.NewInitializeMintInstruction(
			0, // decimals: non-divisible
			payer,
			payer,
			mint,
			solana.SysVarRentPubkey,
		).Build(),
		associatedtokenaccount.NewCreateInstruction(
			payer,
			recipient,
			mint,
		).Build(),
		token.NewMintToInstruction(
			1, // supply of exactly one
			mint,
			ata,
			payer,
			nil,
		).Build(),
	}

	return solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
}

// BuildTransferTransaction builds an unsigned system-program SOL transfer
func BuildTransferTransaction(
	lamports uint64,
	from solana.PublicKey,
	to solana.PublicKey,
	blockhash solana.Hash,
) (*solana.Transaction, error) {
	instruction := system.NewTransferInstruction(lamports, from, to).Build()
	return solana.NewTransaction([]solana.Instruction{instruction}, blockhash, solana.TransactionPayer(from))
}
