package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type PayerType string

const (
	PayerTypeCandidate PayerType = "CANDIDATE"
	PayerTypeEmployee  PayerType = "EMPLOYEE"
	PayerTypeSupplier  PayerType = "SUPPLIER"
	PayerTypeOther     PayerType = "OTHER"
)

func ValidPayerType(t PayerType) bool {
	switch t {
	case PayerTypeCandidate, PayerTypeEmployee, PayerTypeSupplier, PayerTypeOther:
		return true
	default:
		return false
	}
}

// Receipt is the immutable proof-of-transaction record. Numbers are unique
// and strictly increasing within their {prefix, year} scope.
type Receipt struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	ReceiptNumber    string       `gorm:"type:text;not null;uniqueIndex:ux_receipts_number" json:"receipt_number"`
	Date             time.Time    `gorm:"not null;index" json:"date"`
	PayerType        PayerType    `gorm:"type:text;not null" json:"payer_type"`
	PayerID          snowflake.ID `gorm:"not null" json:"payer_id"`
	Amount           int64        `gorm:"not null" json:"amount"`
	Currency         string       `gorm:"type:text;not null" json:"currency"`
	VerificationCode string       `gorm:"type:text;not null" json:"verification_code"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Receipt) TableName() string { return "receipts" }

// ReceiptCounter backs the per {prefix, year} sequence. The value column is
// bumped with an atomic upsert so concurrent issuance cannot collide.
type ReceiptCounter struct {
	Prefix string `gorm:"primaryKey;type:text" json:"prefix"`
	Year   int    `gorm:"primaryKey" json:"year"`
	Value  int64  `gorm:"not null;default:0" json:"value"`
}

func (ReceiptCounter) TableName() string { return "receipt_counters" }
