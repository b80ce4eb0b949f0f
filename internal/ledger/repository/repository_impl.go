package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/ledger/domain"
	"github.com/gatoke/agencyledger/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.JournalEntry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO journal_entries (
			id, agency_id, account_id, type, amount, currency,
			source_type, source_id, balance_after, occurred_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.AgencyID,
		entry.AccountID,
		string(entry.Type),
		entry.Amount,
		entry.Currency,
		string(entry.SourceType),
		entry.SourceID,
		entry.BalanceAfter,
		entry.OccurredAt,
		entry.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := db.WithContext(ctx).Raw(
		`SELECT id, agency_id, account_id, type, amount, currency,
		        source_type, source_id, balance_after, occurred_at, created_at
		 FROM journal_entries WHERE id = ?`,
		id,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, nil
	}
	return &entry, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.JournalEntry, error) {
	stmt := db.WithContext(ctx).Model(&domain.JournalEntry{})

	if filter.AccountID != 0 {
		stmt = stmt.Where("account_id = ?", filter.AccountID)
	}
	if filter.Type != "" {
		stmt = stmt.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		stmt = stmt.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("occurred_at <= ?", *filter.To)
	}

	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		if cursor.ID != "" {
			lastID, err := snowflake.ParseString(cursor.ID)
			if err == nil {
				stmt = stmt.Where("id < ?", lastID)
			}
		}
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	var entries []*domain.JournalEntry
	// Snowflake ids are assigned inside the posting transaction, so id
	// order is per-account posting order.
	if err := stmt.Order("id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) ActivityByAccount(ctx context.Context, db *gorm.DB) ([]domain.AccountActivity, error) {
	var rows []domain.AccountActivity
	err := db.WithContext(ctx).Raw(
		`SELECT account_id,
		        COALESCE(SUM(CASE WHEN type = 'ENTRY' THEN amount ELSE 0 END), 0) AS total_in,
		        COALESCE(SUM(CASE WHEN type = 'EXIT' THEN amount ELSE 0 END), 0) AS total_out,
		        COUNT(*) AS entry_count
		 FROM journal_entries
		 GROUP BY account_id`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
