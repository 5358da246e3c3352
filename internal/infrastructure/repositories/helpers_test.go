package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		email TEXT NOT NULL,
		profile_image TEXT,
		bio TEXT,
		favorite_boards TEXT,
		created_boards TEXT,
		owned_boards TEXT,
		followers TEXT,
		following TEXT,
		verified BOOLEAN DEFAULT FALSE,
		xp INTEGER DEFAULT 0,
		total_sales INTEGER DEFAULT 0,
		total_purchases INTEGER DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createBoardTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE boards (
		id TEXT PRIMARY KEY,
		prismic_id TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		creator_id TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT,
		price INTEGER,
		description TEXT,
		mint_address TEXT NOT NULL UNIQUE,
		metadata_uri TEXT NOT NULL,
		attributes TEXT,
		created_at DATETIME
	);`)
}

func createMintRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE mint_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		prismic_id TEXT,
		name TEXT NOT NULL,
		description TEXT,
		attributes TEXT,
		image_url TEXT,
		metadata_uri TEXT,
		status TEXT NOT NULL,
		mint_address TEXT,
		tx_signature TEXT,
		attempts INTEGER DEFAULT 0,
		last_error TEXT,
		board_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createWalletTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		address TEXT NOT NULL UNIQUE,
		sealed_key TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}
