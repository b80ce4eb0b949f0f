package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListFilter struct {
	AccountID snowflake.ID
	Type      EntryType
	From      *time.Time
	To        *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *JournalEntry) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*JournalEntry, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*JournalEntry, error)
	ActivityByAccount(ctx context.Context, db *gorm.DB) ([]AccountActivity, error)
}
