package repository

import (
	"context"

	"github.com/gatoke/agencyledger/internal/receipt/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO receipts (
			id, receipt_number, date, payer_type, payer_id,
			amount, currency, verification_code, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID,
		receipt.ReceiptNumber,
		receipt.Date,
		string(receipt.PayerType),
		receipt.PayerID,
		receipt.Amount,
		receipt.Currency,
		receipt.VerificationCode,
		receipt.CreatedAt,
	).Error
}

// NextSequence bumps the {prefix, year} counter atomically and returns the
// new value. The upsert takes a row write on the counter, so concurrent
// issuers in the same scope serialize here.
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB, prefix string, year int) (int64, error) {
	var value int64
	err := db.WithContext(ctx).Raw(
		`INSERT INTO receipt_counters (prefix, year, value) VALUES (?, ?, 1)
		 ON CONFLICT (prefix, year) DO UPDATE SET value = receipt_counters.value + 1
		 RETURNING value`,
		prefix,
		year,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, search string, limit int) ([]*domain.Receipt, error) {
	stmt := db.WithContext(ctx).Model(&domain.Receipt{})
	if search != "" {
		pattern := "%" + search + "%"
		stmt = stmt.Where("receipt_number LIKE ? OR payer_type LIKE ?", pattern, pattern)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var receipts []*domain.Receipt
	if err := stmt.Order("id desc").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repo) FindByNumber(ctx context.Context, db *gorm.DB, number string) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := db.WithContext(ctx).Raw(
		`SELECT id, receipt_number, date, payer_type, payer_id,
		        amount, currency, verification_code, created_at
		 FROM receipts WHERE receipt_number = ?`,
		number,
	).Scan(&receipt).Error
	if err != nil {
		return nil, err
	}
	if receipt.ID == 0 {
		return nil, nil
	}
	return &receipt, nil
}
