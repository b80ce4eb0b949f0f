package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	ListPaymentTypes(ctx context.Context, db *gorm.DB) ([]*PaymentType, error)
	ListRevenueTypes(ctx context.Context, db *gorm.DB) ([]*RevenueType, error)
	ListExpenseCategories(ctx context.Context, db *gorm.DB) ([]*ExpenseCategory, error)
	ListCurrencies(ctx context.Context, db *gorm.DB) ([]*Currency, error)
}

var ErrNotFound = errors.New("not_found")
