package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Reference rows are small admin-managed lookup tables. Postings validate
// their foreign ids against these through the read-through cache.

type PaymentType struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Code      string       `gorm:"not null;uniqueIndex:ux_payment_types_code" json:"code"`
	Label     string       `gorm:"not null" json:"label"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (PaymentType) TableName() string { return "payment_types" }

type RevenueType struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Code      string       `gorm:"not null;uniqueIndex:ux_revenue_types_code" json:"code"`
	Label     string       `gorm:"not null" json:"label"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RevenueType) TableName() string { return "revenue_types" }

type ExpenseCategory struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Code      string       `gorm:"not null;uniqueIndex:ux_expense_categories_code" json:"code"`
	Label     string       `gorm:"not null" json:"label"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ExpenseCategory) TableName() string { return "expense_categories" }

type Currency struct {
	Code      string    `gorm:"primaryKey;type:varchar(8)" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Currency) TableName() string { return "currencies" }
