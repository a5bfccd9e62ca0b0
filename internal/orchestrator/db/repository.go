package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is gorm.ErrRecordNotFound re-exported so callers outside
// this package don't need to import gorm to check for it.
var ErrNotFound = gorm.ErrRecordNotFound

// UserRepository persists User rows.
type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// Create inserts a user. A unique-constraint violation on username or
// email surfaces as an error the caller maps to 422 (spec.md section 7
// "Duplicate username/email").
func (r *UserRepository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) ByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// WalletRepository persists Wallet rows inside the caller's
// transaction.
type WalletRepository struct{ db *gorm.DB }

func NewWalletRepository(db *gorm.DB) *WalletRepository { return &WalletRepository{db: db} }

// WithTx returns a repository bound to an open transaction, so the
// HTTP handlers in internal/orchestrator/api can compose inserts with
// participant RPC fan-out atomically (spec.md section 4.1.1).
func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository { return &WalletRepository{db: tx} }

func (r *WalletRepository) Create(ctx context.Context, w *Wallet) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WalletRepository) ByID(ctx context.Context, id int64) (*Wallet, error) {
	var w Wallet
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// ByIDForUser loads a wallet and checks ownership in one query,
// returning ErrNotFound (mapped to HTTP 404) for both "doesn't exist"
// and "not yours" — spec.md section 8 property 3 requires the latter
// not to leak existence.
func (r *WalletRepository) ByIDForUser(ctx context.Context, id, userID int64) (*Wallet, error) {
	var w Wallet
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&Wallet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("db: wallet delete affected no rows")
	}
	return nil
}

// TransactionRepository persists Transaction rows.
type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(ctx context.Context, t *Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}
