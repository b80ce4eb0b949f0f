package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/account/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO accounts (id, agency_id, name, type, currency, balance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.AgencyID,
		account.Name,
		string(account.Type),
		account.Currency,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT id, agency_id, name, type, currency, balance, created_at, updated_at
		 FROM accounts WHERE id = ?`,
		id,
	).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, nil
	}
	return &account, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := db.WithContext(ctx).
		Model(&domain.Account{}).
		Order("created_at asc, id asc").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repo) UpdateDetails(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`UPDATE accounts SET name = ?, type = ?, updated_at = ? WHERE id = ?`,
		account.Name,
		string(account.Type),
		account.UpdatedAt,
		account.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM accounts WHERE id = ?`, id).Error
}

func (r *repo) CountJournalEntries(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM journal_entries WHERE account_id = ?`, id).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) AdjustBalance(ctx context.Context, db *gorm.DB, id snowflake.ID, delta int64, currency string) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE accounts SET balance = balance + ?, updated_at = ? WHERE id = ? AND currency = ?`,
		delta,
		time.Now().UTC(),
		id,
		currency,
	)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		existing, err := r.FindByID(ctx, db, id)
		if err != nil {
			return 0, err
		}
		if existing == nil {
			return 0, domain.ErrNotFound
		}
		return 0, domain.ErrCurrencyMismatch
	}

	var balance int64
	err := db.WithContext(ctx).
		Raw(`SELECT balance FROM accounts WHERE id = ?`, id).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}
