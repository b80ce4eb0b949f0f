package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/posting/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertCandidatePayment(ctx context.Context, db *gorm.DB, row *domain.CandidatePayment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO candidate_payments
		 (id, agency_id, candidate_id, payment_type_id, account_id, amount, currency, date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.AgencyID,
		row.CandidateID,
		row.PaymentTypeID,
		row.AccountID,
		row.Amount,
		row.Currency,
		row.Date,
		row.Status,
		row.CreatedAt,
		row.UpdatedAt,
	).Error
}

func (r *repo) InsertSalaryPayment(ctx context.Context, db *gorm.DB, row *domain.SalaryPayment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO salary_payments
		 (id, agency_id, employee_id, month, account_id, amount, currency, date, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.AgencyID,
		row.EmployeeID,
		row.Month,
		row.AccountID,
		row.Amount,
		row.Currency,
		row.Date,
		row.Status,
		row.CreatedAt,
		row.UpdatedAt,
	).Error
}

func (r *repo) InsertManualRevenue(ctx context.Context, db *gorm.DB, row *domain.ManualRevenue) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO manual_revenues
		 (id, agency_id, revenue_type_id, account_id, amount, currency, date, description, metadata, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.AgencyID,
		row.RevenueTypeID,
		row.AccountID,
		row.Amount,
		row.Currency,
		row.Date,
		row.Description,
		row.Metadata,
		row.Status,
		row.CreatedAt,
		row.UpdatedAt,
	).Error
}

func (r *repo) InsertExpense(ctx context.Context, db *gorm.DB, row *domain.Expense) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO expenses
		 (id, agency_id, category_id, beneficiary_type, beneficiary_id, account_id, amount, currency, date, description, metadata, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.AgencyID,
		row.CategoryID,
		row.BeneficiaryType,
		row.BeneficiaryID,
		row.AccountID,
		row.Amount,
		row.Currency,
		row.Date,
		row.Description,
		row.Metadata,
		row.Status,
		row.CreatedAt,
		row.UpdatedAt,
	).Error
}

func (r *repo) MarkPosted(ctx context.Context, db *gorm.DB, table string, id, journalEntryID snowflake.ID, receiptID *snowflake.ID) error {
	result := db.WithContext(ctx).Exec(
		fmt.Sprintf(
			`UPDATE %s SET status = ?, journal_entry_id = ?, receipt_id = ?, updated_at = ? WHERE id = ?`,
			table,
		),
		domain.StatusPosted,
		journalEntryID,
		receiptID,
		time.Now().UTC(),
		id,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) ListCandidatePayments(ctx context.Context, db *gorm.DB) ([]*domain.CandidatePayment, error) {
	var rows []*domain.CandidatePayment
	err := db.WithContext(ctx).
		Model(&domain.CandidatePayment{}).
		Order("date desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListSalaryPayments(ctx context.Context, db *gorm.DB) ([]*domain.SalaryPayment, error) {
	var rows []*domain.SalaryPayment
	err := db.WithContext(ctx).
		Model(&domain.SalaryPayment{}).
		Order("date desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListManualRevenues(ctx context.Context, db *gorm.DB) ([]*domain.ManualRevenue, error) {
	var rows []*domain.ManualRevenue
	err := db.WithContext(ctx).
		Model(&domain.ManualRevenue{}).
		Order("date desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListExpenses(ctx context.Context, db *gorm.DB) ([]*domain.Expense, error) {
	var rows []*domain.Expense
	err := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Order("date desc, id desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
