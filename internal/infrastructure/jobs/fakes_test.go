package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
)

// fakeChain is an in-memory blockchain.Client for job tests.
type fakeChain struct {
	mu        sync.Mutex
	balances  map[solana.PublicKey]uint64
	confirmed map[solana.Signature]bool
	balErr    error
	sigErr    error
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balances:  make(map[solana.PublicKey]uint64),
		confirmed: make(map[solana.Signature]bool),
	}
}

func (f *fakeChain) setBalance(addr solana.PublicKey, lamports uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[addr] = lamports
}

func (f *fakeChain) Balance(_ context.Context, addr solana.PublicKey) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.balErr != nil {
		return 0, f.balErr
	}
	return f.balances[addr], nil
}

func (f *fakeChain) RequestAirdrop(_ context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[addr] += lamports
	return solana.Signature{}, nil
}

func (f *fakeChain) LatestBlockhash(context.Context) (solana.Hash, uint64, error) {
	return solana.Hash{}, 100, nil
}

func (f *fakeChain) MinimumBalanceForRentExemption(context.Context, uint64) (uint64, error) {
	return 1_461_600, nil
}

func (f *fakeChain) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	return solana.Signature{}, nil
}

func (f *fakeChain) ConfirmTransaction(context.Context, solana.Signature, uint64) error {
	return nil
}

func (f *fakeChain) SignatureConfirmed(_ context.Context, sig solana.Signature) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sigErr != nil {
		return false, f.sigErr
	}
	return f.confirmed[sig], nil
}

// fakeMintRepo keeps mint records in a map.
type fakeMintRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*entities.MintRecord
}

func newFakeMintRepo() *fakeMintRepo {
	return &fakeMintRepo{records: make(map[uuid.UUID]*entities.MintRecord)}
}

func (f *fakeMintRepo) Create(_ context.Context, rec *entities.MintRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeMintRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.MintRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeMintRepo) GetByMintAddress(_ context.Context, mintAddress string) (*entities.MintRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.MintAddress == mintAddress {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeMintRepo) MarkSubmitted(_ context.Context, id uuid.UUID, mintAddress, txSignature string, attempts int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	rec.Status = entities.MintStatusSubmitted
	rec.MintAddress = mintAddress
	rec.TxSignature = txSignature
	rec.Attempts = attempts
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMintRepo) MarkMinted(_ context.Context, id uuid.UUID, boardID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	rec.Status = entities.MintStatusMinted
	rec.BoardID = &boardID
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMintRepo) MarkFailed(_ context.Context, id uuid.UUID, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	rec.Status = entities.MintStatusFailed
	rec.LastError = lastError
	rec.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMintRepo) ListStaleSubmitted(_ context.Context, cutoff time.Time, limit int) ([]*entities.MintRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.MintRecord
	for _, rec := range f.records {
		if rec.Status == entities.MintStatusSubmitted && rec.UpdatedAt.Before(cutoff) {
			cp := *rec
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeMintRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MintRecord, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.MintRecord
	for _, rec := range f.records {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

// fakeFinalizer records which mint records were finalized.
type fakeFinalizer struct {
	mu        sync.Mutex
	finalized []uuid.UUID
	err       error
}

func (f *fakeFinalizer) FinalizeRecord(_ context.Context, rec *entities.MintRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.finalized = append(f.finalized, rec.ID)
	return nil
}
