package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertCandidatePayment(ctx context.Context, db *gorm.DB, row *CandidatePayment) error
	InsertSalaryPayment(ctx context.Context, db *gorm.DB, row *SalaryPayment) error
	InsertManualRevenue(ctx context.Context, db *gorm.DB, row *ManualRevenue) error
	InsertExpense(ctx context.Context, db *gorm.DB, row *Expense) error

	// MarkPosted flips one transaction row to posted and links the journal
	// entry and receipt it produced. table is the row model's table name.
	MarkPosted(ctx context.Context, db *gorm.DB, table string, id, journalEntryID snowflake.ID, receiptID *snowflake.ID) error

	ListCandidatePayments(ctx context.Context, db *gorm.DB) ([]*CandidatePayment, error)
	ListSalaryPayments(ctx context.Context, db *gorm.DB) ([]*SalaryPayment, error)
	ListManualRevenues(ctx context.Context, db *gorm.DB) ([]*ManualRevenue, error)
	ListExpenses(ctx context.Context, db *gorm.DB) ([]*Expense, error)
}
