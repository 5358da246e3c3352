package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gagliardetto/solana-go"

	"suburbia-skate.backend/internal/config"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/infrastructure/jobs"
)

func main() {
	cfg := config.Load()

	rpcURL := flag.String("rpc-url", cfg.Solana.RPCURL, "Solana RPC endpoint")
	airdrop := flag.Bool("airdrop", false, "request a devnet airdrop and wait for the funds")
	lamports := flag.Uint64("lamports", cfg.Solana.AirdropLamports, "airdrop amount in lamports")
	timeout := flag.Duration("timeout", cfg.Solana.ConfirmTimeout, "how long to wait for the airdrop")
	poll := flag.Duration("poll-interval", cfg.Solana.BalancePollInterval, "balance poll cadence while waiting")
	flag.Parse()

	wallet := solana.NewWallet()

	fmt.Println("Generated Solana keypair")
	fmt.Printf("ADDRESS=%s\n", wallet.PublicKey())
	fmt.Printf("PRIVATE_KEY=%s\n", wallet.PrivateKey.String())

	if !*airdrop {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	chain := blockchain.NewRPCClient(*rpcURL, *timeout)
	balance, err := airdropAndWait(ctx, chain, wallet.PublicKey(), *lamports, *poll)
	if err != nil {
		log.Fatalf("airdrop failed: %v", err)
	}
	fmt.Printf("BALANCE_LAMPORTS=%d\n", balance)
}

// airdropAndWait requests an airdrop and blocks until the funds are visible,
// polling the balance at the given cadence.
func airdropAndWait(ctx context.Context, chain blockchain.Client, addr solana.PublicKey, lamports uint64, poll time.Duration) (uint64, error) {
	sig, err := chain.RequestAirdrop(ctx, addr, lamports)
	if err != nil {
		return 0, fmt.Errorf("airdrop request failed: %w", err)
	}
	fmt.Printf("AIRDROP_TX=%s\n", sig)

	watcher := jobs.NewBalanceWatcher(chain, poll)
	defer watcher.Stop()

	return watcher.WaitForLamports(ctx, addr, lamports)
}
