package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/pkg/db/pagination"
	"gorm.io/gorm"
)

// PostRequest describes one balance-affecting event.
type PostRequest struct {
	AgencyID   snowflake.ID
	AccountID  snowflake.ID
	Type       EntryType
	Amount     int64
	Currency   string
	SourceType SourceType
	SourceID   snowflake.ID
	OccurredAt time.Time
}

type ListRequest struct {
	AccountID string
	Type      string
	From      *time.Time
	To        *time.Time
	PageToken string
	PageSize  int
}

type ListResponse struct {
	pagination.PageInfo
	Entries []JournalEntry `json:"entries"`
}

type Service interface {
	// Post writes a journal entry and adjusts the account balance as one
	// unit. When tx is non-nil both writes join the caller's transaction;
	// otherwise Post opens its own.
	Post(ctx context.Context, tx *gorm.DB, req PostRequest) (*JournalEntry, error)

	List(context.Context, ListRequest) (ListResponse, error)
	GetByID(ctx context.Context, id string) (JournalEntry, error)

	// Reverse appends a compensating entry for a prior posting. History is
	// never edited in place.
	Reverse(ctx context.Context, entryID string) (*JournalEntry, error)

	// ActivityByAccount backs the dashboard totals.
	ActivityByAccount(context.Context) ([]AccountActivity, error)
}

var (
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidEntryType  = errors.New("invalid_entry_type")
	ErrInvalidSourceType = errors.New("invalid_source_type")
	ErrInvalidSourceID   = errors.New("invalid_source_id")
	ErrInvalidAccount    = errors.New("invalid_account")
	ErrInvalidOccurredAt = errors.New("invalid_occurred_at")
	ErrInvalidID         = errors.New("invalid_id")
	ErrDuplicateSource   = errors.New("duplicate_source")
	ErrAlreadyReversed   = errors.New("already_reversed")
	ErrNotFound          = errors.New("not_found")
)
