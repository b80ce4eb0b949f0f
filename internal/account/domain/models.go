package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// AccountType distinguishes how the agency physically holds funds.
type AccountType string

const (
	AccountTypeCash   AccountType = "CASH"
	AccountTypeBank   AccountType = "BANK"
	AccountTypeMobile AccountType = "MOBILE"
)

func ValidAccountType(t AccountType) bool {
	switch t {
	case AccountTypeCash, AccountTypeBank, AccountTypeMobile:
		return true
	default:
		return false
	}
}

// Account holds a running balance in minor units of its currency.
// Balance is written exclusively through AdjustBalance; overdraft is
// permitted (expenses may exceed the balance).
type Account struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID  snowflake.ID `gorm:"not null;index" json:"agency_id"`
	Name      string       `gorm:"not null" json:"name"`
	Type      AccountType  `gorm:"type:text;not null" json:"type"`
	Currency  string       `gorm:"type:text;not null" json:"currency"`
	Balance   int64        `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
