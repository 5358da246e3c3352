package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gagliardetto/solana-go"
	"suburbia-skate.backend/internal/domain/entities"
	"suburbia-skate.backend/internal/domain/repositories"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
)

// MintFinalizer turns a confirmed mint record into a board row and user
// list updates. The implementation must be idempotent per mint address.
type MintFinalizer interface {
	FinalizeRecord(ctx context.Context, record *entities.MintRecord) error
}

// MintReconciler re-drives stale SUBMITTED mint records. A crash between
// broadcast and persistence leaves a record behind; this job checks the
// chain and either finalizes or fails it.
type MintReconciler struct {
	mintRepo  repositories.MintRecordRepository
	chain     blockchain.Client
	finalizer MintFinalizer

	interval   time.Duration
	staleAfter time.Duration
	// Records submitted but unconfirmed past this age are abandoned.
	failAfter time.Duration

	scheduler gocron.Scheduler
}

func NewMintReconciler(mintRepo repositories.MintRecordRepository, chain blockchain.Client, finalizer MintFinalizer) *MintReconciler {
	return &MintReconciler{
		mintRepo:   mintRepo,
		chain:      chain,
		finalizer:  finalizer,
		interval:   time.Minute,
		staleAfter: 2 * time.Minute,
		failAfter:  30 * time.Minute,
	}
}

// Start schedules the reconciliation loop
func (j *MintReconciler) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	j.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(func() {
			j.Run(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Println("🕐 Starting mint reconciliation job...")
	return nil
}

// Stop shuts the scheduler down
func (j *MintReconciler) Stop() {
	if j.scheduler != nil {
		_ = j.scheduler.Shutdown()
	}
}

// Run processes one batch of stale SUBMITTED records
func (j *MintReconciler) Run(ctx context.Context) {
	cutoff := time.Now().Add(-j.staleAfter)
	records, err := j.mintRepo.ListStaleSubmitted(ctx, cutoff, 50)
	if err != nil {
		log.Printf("❌ Error fetching stale mint records: %v", err)
		return
	}
	if len(records) == 0 {
		return
	}

	log.Printf("🔄 Reconciling %d stale mint records...", len(records))
	for _, rec := range records {
		if err := j.reconcileOne(ctx, rec); err != nil {
			log.Printf("❌ Error reconciling mint record %s: %v", rec.ID, err)
		}
	}
}

func (j *MintReconciler) reconcileOne(ctx context.Context, rec *entities.MintRecord) error {
	sig, err := solana.SignatureFromBase58(rec.TxSignature)
	if err != nil {
		return j.mintRepo.MarkFailed(ctx, rec.ID, "unparseable transaction signature")
	}

	confirmed, err := j.chain.SignatureConfirmed(ctx, sig)
	if err != nil {
		// RPC hiccup, leave the record for the next pass.
		return err
	}

	if confirmed {
		if err := j.finalizer.FinalizeRecord(ctx, rec); err != nil {
			return err
		}
		log.Printf("✅ Reconciled mint %s for record %s", rec.MintAddress, rec.ID)
		return nil
	}

	if time.Since(rec.CreatedAt) > j.failAfter {
		log.Printf("⏹️ Abandoning mint record %s after %s unconfirmed", rec.ID, j.failAfter)
		return j.mintRepo.MarkFailed(ctx, rec.ID, "transaction never confirmed")
	}
	return nil
}
