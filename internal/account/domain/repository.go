package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	List(ctx context.Context, db *gorm.DB) ([]*Account, error)
	UpdateDetails(ctx context.Context, db *gorm.DB, account *Account) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	CountJournalEntries(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	// AdjustBalance atomically applies delta to the account balance and
	// returns the new balance. The delta is applied in place so concurrent
	// postings against the same account serialize on the row write.
	AdjustBalance(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int64, currency string) (int64, error)
}
