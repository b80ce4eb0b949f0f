package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	"gorm.io/gorm"
)

// IssueRequest asks for a numbered receipt for one money-moving transaction.
// The number prefix is derived from the transaction's ledger source type.
type IssueRequest struct {
	Source    ledgerdomain.SourceType
	PayerType PayerType
	PayerID   snowflake.ID
	Amount    int64
	Currency  string
	Date      time.Time
}

type ListRequest struct {
	Search    string
	PageToken string
	PageSize  int
}

type Service interface {
	// Issue must run inside the caller's posting transaction so the
	// sequence bump commits or rolls back with everything else.
	Issue(ctx context.Context, tx *gorm.DB, req IssueRequest) (*Receipt, error)

	List(context.Context, ListRequest) ([]Receipt, error)
	GetByNumber(ctx context.Context, number string) (Receipt, error)
}

var (
	ErrInvalidSource    = errors.New("invalid_source")
	ErrInvalidPayerType = errors.New("invalid_payer_type")
	ErrInvalidPayer     = errors.New("invalid_payer")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidDate      = errors.New("invalid_date")
	ErrNotFound         = errors.New("not_found")
)
