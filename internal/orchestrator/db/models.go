// Package db holds the orchestrator's gorm models and repositories for
// the three tables spec.md section 6.5 names: tbl_users, tbl_wallets,
// tbl_transactions.
package db

import "time"

// User is a signed-up account (spec.md section 8, scenario 1; out of
// core per spec section 1, carried as ambient glue per SPEC_FULL.md
// section C).
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"column:username;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	Email        string `gorm:"column:email;uniqueIndex;not null" json:"email"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "tbl_users" }

// Chain mirrors proto/mpc.Chain for storage, kept as a small int so the
// orchestrator never needs to import the gRPC package from its schema.
type Chain int32

const (
	ChainEthereum Chain = 0
	ChainBitcoin  Chain = 1
)

// Wallet is created when key-generation succeeds on all participants
// (spec.md section 3) and destroyed after the delete-wallet fan-out to
// every participant; if a participant failed to delete its share, the
// row is still removed and the wallet id is queued for reconciliation.
type Wallet struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"column:user_id;index;not null" json:"user_id"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Chain     Chain  `gorm:"column:chain;not null" json:"chain"`
	PublicKey []byte `gorm:"column:public_key" json:"public_key"` // additive field, SPEC_FULL.md section C
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Wallet) TableName() string { return "tbl_wallets" }

// Transaction's row exists iff a signing ceremony was initiated,
// regardless of outcome (spec.md section 3); a rollback of the outer DB
// transaction discards it.
type Transaction struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64 `gorm:"column:user_id;index;not null" json:"user_id"`
	WalletID  int64 `gorm:"column:wallet_id;index;not null" json:"wallet_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Transaction) TableName() string { return "tbl_transactions" }
