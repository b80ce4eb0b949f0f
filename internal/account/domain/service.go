package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateAccountRequest struct {
	Name           string
	Type           AccountType
	Currency       string
	OpeningBalance int64
}

type UpdateAccountRequest struct {
	ID   string
	Name string
	Type AccountType
}

type Service interface {
	Create(context.Context, CreateAccountRequest) (Account, error)
	Update(context.Context, UpdateAccountRequest) (Account, error)
	List(context.Context) ([]Account, error)
	GetByID(ctx context.Context, id string) (Account, error)

	// Delete refuses to remove an account that journal entries reference.
	Delete(ctx context.Context, id string) error

	// AdjustBalance is reserved for the ledger engine and must run inside
	// the caller's posting transaction.
	AdjustBalance(ctx context.Context, tx *gorm.DB, id snowflake.ID, delta int64, currency string) (int64, error)
}

var (
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidType      = errors.New("invalid_type")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidID        = errors.New("invalid_id")
	ErrNotFound         = errors.New("not_found")
	ErrCurrencyMismatch = errors.New("currency_mismatch")
	ErrHasTransactions  = errors.New("has_transactions")
	ErrNoAgency         = errors.New("no_agency")
)
