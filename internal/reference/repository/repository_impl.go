package repository

import (
	"context"

	"github.com/gatoke/agencyledger/internal/reference/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListPaymentTypes(ctx context.Context, db *gorm.DB) ([]*domain.PaymentType, error) {
	var rows []*domain.PaymentType
	err := db.WithContext(ctx).
		Raw(`SELECT id, code, label, created_at FROM payment_types ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListRevenueTypes(ctx context.Context, db *gorm.DB) ([]*domain.RevenueType, error) {
	var rows []*domain.RevenueType
	err := db.WithContext(ctx).
		Raw(`SELECT id, code, label, created_at FROM revenue_types ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListExpenseCategories(ctx context.Context, db *gorm.DB) ([]*domain.ExpenseCategory, error) {
	var rows []*domain.ExpenseCategory
	err := db.WithContext(ctx).
		Raw(`SELECT id, code, label, created_at FROM expense_categories ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListCurrencies(ctx context.Context, db *gorm.DB) ([]*domain.Currency, error) {
	var rows []*domain.Currency
	err := db.WithContext(ctx).
		Raw(`SELECT code, name, is_default, created_at FROM currencies ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
