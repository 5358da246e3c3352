package usecases_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"suburbia-skate.backend/internal/domain/entities"
	domainerrors "suburbia-skate.backend/internal/domain/errors"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/infrastructure/identity"
)

// passthroughUoW runs the function without a real transaction.
type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.WalletAddress == user.WalletAddress {
			return domainerrors.ErrAlreadyExists
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByWallet(_ context.Context, walletAddress string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.WalletAddress == walletAddress {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeUserRepo) UpdateBoardLists(_ context.Context, id uuid.UUID, owned, created, favorites []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.OwnedBoards = owned
	u.CreatedBoards = created
	u.FavoriteBoards = favorites
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[user.ID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.Username = user.Username
	u.Email = user.Email
	u.Bio = user.Bio
	u.ProfileImage = user.ProfileImage
	u.UpdatedAt = time.Now()
	return nil
}

// fakeBoardRepo is an in-memory BoardRepository.
type fakeBoardRepo struct {
	mu        sync.Mutex
	boards    map[uuid.UUID]*entities.Board
	createErr error
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: make(map[uuid.UUID]*entities.Board)}
}

func (f *fakeBoardRepo) Create(_ context.Context, board *entities.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, b := range f.boards {
		if b.MintAddress == board.MintAddress {
			return domainerrors.ErrAlreadyExists
		}
	}
	cp := *board
	f.boards[board.ID] = &cp
	return nil
}

func (f *fakeBoardRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.boards[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoardRepo) GetByMint(_ context.Context, mintAddress string) (*entities.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.boards {
		if b.MintAddress == mintAddress {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeBoardRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.Board, 0, len(ids))
	for _, id := range ids {
		if b, ok := f.boards[id]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBoardRepo) List(_ context.Context, limit, offset int) ([]*entities.Board, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entities.Board, 0, len(f.boards))
	for _, b := range f.boards {
		cp := *b
		all = append(all, &cp)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return []*entities.Board{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// fakeMintRepo is an in-memory MintRecordRepository. It remembers every
// submitted mint address so tests can check per-attempt keypair freshness.
type fakeMintRepo struct {
	mu             sync.Mutex
	records        map[uuid.UUID]*entities.MintRecord
	submittedAddrs []string
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
	f.submittedAddrs = append(f.submittedAddrs, mintAddress)
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

// fakeChain is a scriptable blockchain.Client.
type fakeChain struct {
	mu            sync.Mutex
	balances      map[solana.PublicKey]uint64
	blockhashErr  error
	sendErr       error
	sendErrCount  int // fail this many sends, then succeed
	confirmErr    error
	confirmCount  int // fail this many confirms, then succeed
	airdropErrs   int // fail this many airdrop requests
	airdropGrant  uint64
	sigConfirmed  bool
	sends         int
	airdropCalls  int
	confirmedSigs map[solana.Signature]bool
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balances:      make(map[solana.PublicKey]uint64),
		confirmedSigs: make(map[solana.Signature]bool),
		sigConfirmed:  true,
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
	return f.balances[addr], nil
}

func (f *fakeChain) RequestAirdrop(_ context.Context, addr solana.PublicKey, lamports uint64) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.airdropCalls++
	if f.airdropErrs > 0 {
		f.airdropErrs--
		return solana.Signature{}, fmt.Errorf("faucet rate limited")
	}
	grant := lamports
	if f.airdropGrant != 0 {
		grant = f.airdropGrant
	}
	f.balances[addr] += grant
	return solana.Signature{1}, nil
}

func (f *fakeChain) LatestBlockhash(context.Context) (solana.Hash, uint64, error) {
	if f.blockhashErr != nil {
		return solana.Hash{}, 0, f.blockhashErr
	}
	return solana.Hash{7}, 1000, nil
}

func (f *fakeChain) MinimumBalanceForRentExemption(context.Context, uint64) (uint64, error) {
	return 1_461_600, nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends++
	if f.sendErrCount > 0 {
		f.sendErrCount--
		return solana.Signature{}, fmt.Errorf("node is behind")
	}
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return tx.Signatures[0], nil
}

func (f *fakeChain) ConfirmTransaction(_ context.Context, sig solana.Signature, _ uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmCount > 0 {
		f.confirmCount--
		return fmt.Errorf("blockhash expired")
	}
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmedSigs[sig] = true
	return nil
}

func (f *fakeChain) SignatureConfirmed(_ context.Context, sig solana.Signature) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmedSigs[sig] {
		return true, nil
	}
	return f.sigConfirmed, nil
}

// fakeCustodian hands out a fixed keypair per user.
type fakeCustodian struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]*solana.Wallet
}

func newFakeCustodian() *fakeCustodian {
	return &fakeCustodian{wallets: make(map[uuid.UUID]*solana.Wallet)}
}

func (f *fakeCustodian) wallet(userID uuid.UUID) *solana.Wallet {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wallets[userID]
	if !ok {
		w = solana.NewWallet()
		f.wallets[userID] = w
	}
	return w
}

func (f *fakeCustodian) EnsureWallet(_ context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	w := f.wallet(userID)
	return &entities.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Address: w.PublicKey().String(),
	}, nil
}

func (f *fakeCustodian) SignerFor(_ context.Context, userID uuid.UUID) (blockchain.Signer, error) {
	return blockchain.NewKeypairSigner(f.wallet(userID).PrivateKey), nil
}

// fakeFunder accepts or rejects funding.
type fakeFunder struct {
	err   error
	calls int
}

func (f *fakeFunder) EnsureFunded(context.Context, solana.PublicKey) error {
	f.calls++
	return f.err
}

// fakeStore records uploaded objects.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, path string, content []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.objects[path] = content
	return "https://cdn.example.com/" + path, nil
}

// fakeVerifier returns a canned identity.
type fakeVerifier struct {
	ident *identity.Identity
	err   error
}

func (f *fakeVerifier) Verify(context.Context, string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}
