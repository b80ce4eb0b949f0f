package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
	"gorm.io/datatypes"
)

// Status tracks a transaction row through its posting transaction. Rows are
// inserted pending_post and flipped to posted in the same transaction that
// writes the journal entry, so a committed row is always posted.
type Status string

const (
	StatusPendingPost Status = "pending_post"
	StatusPosted      Status = "posted"
)

// CandidatePayment records money received from a candidate.
type CandidatePayment struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	AgencyID       snowflake.ID  `gorm:"not null;index" json:"agency_id"`
	CandidateID    snowflake.ID  `gorm:"not null;index" json:"candidate_id"`
	PaymentTypeID  snowflake.ID  `gorm:"not null" json:"payment_type_id"`
	AccountID      snowflake.ID  `gorm:"not null;index" json:"account_id"`
	Amount         int64         `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"type:text;not null" json:"currency"`
	Date           time.Time     `gorm:"not null" json:"date"`
	Status         Status        `gorm:"type:text;not null" json:"status"`
	JournalEntryID *snowflake.ID `json:"journal_entry_id,omitempty"`
	ReceiptID      *snowflake.ID `json:"receipt_id,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CandidatePayment) TableName() string { return "candidate_payments" }

// SalaryPayment records a salary paid to an employee for one month.
type SalaryPayment struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	AgencyID       snowflake.ID  `gorm:"not null;index" json:"agency_id"`
	EmployeeID     snowflake.ID  `gorm:"not null;index" json:"employee_id"`
	Month          string        `gorm:"type:varchar(7);not null" json:"month"`
	AccountID      snowflake.ID  `gorm:"not null;index" json:"account_id"`
	Amount         int64         `gorm:"not null" json:"amount"`
	Currency       string        `gorm:"type:text;not null" json:"currency"`
	Date           time.Time     `gorm:"not null" json:"date"`
	Status         Status        `gorm:"type:text;not null" json:"status"`
	JournalEntryID *snowflake.ID `json:"journal_entry_id,omitempty"`
	ReceiptID      *snowflake.ID `json:"receipt_id,omitempty"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SalaryPayment) TableName() string { return "salary_payments" }

// ManualRevenue records income that did not come through a candidate payment.
type ManualRevenue struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	AgencyID       snowflake.ID      `gorm:"not null;index" json:"agency_id"`
	RevenueTypeID  snowflake.ID      `gorm:"not null" json:"revenue_type_id"`
	AccountID      snowflake.ID      `gorm:"not null;index" json:"account_id"`
	Amount         int64             `gorm:"not null" json:"amount"`
	Currency       string            `gorm:"type:text;not null" json:"currency"`
	Date           time.Time         `gorm:"not null" json:"date"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	Status         Status            `gorm:"type:text;not null" json:"status"`
	JournalEntryID *snowflake.ID     `json:"journal_entry_id,omitempty"`
	ReceiptID      *snowflake.ID     `json:"receipt_id,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (ManualRevenue) TableName() string { return "manual_revenues" }

// Expense records money paid out, optionally tied to a candidate or employee
// beneficiary.
type Expense struct {
	ID              snowflake.ID            `gorm:"primaryKey" json:"id"`
	AgencyID        snowflake.ID            `gorm:"not null;index" json:"agency_id"`
	CategoryID      snowflake.ID            `gorm:"not null" json:"category_id"`
	BeneficiaryType receiptdomain.PayerType `gorm:"type:text;not null" json:"beneficiary_type"`
	BeneficiaryID   snowflake.ID            `gorm:"not null;default:0" json:"beneficiary_id,omitempty"`
	AccountID       snowflake.ID            `gorm:"not null;index" json:"account_id"`
	Amount          int64                   `gorm:"not null" json:"amount"`
	Currency        string                  `gorm:"type:text;not null" json:"currency"`
	Date            time.Time               `gorm:"not null" json:"date"`
	Description     string                  `gorm:"type:text" json:"description,omitempty"`
	Metadata        datatypes.JSONMap       `gorm:"type:jsonb" json:"metadata,omitempty"`
	Status          Status                  `gorm:"type:text;not null" json:"status"`
	JournalEntryID  *snowflake.ID           `json:"journal_entry_id,omitempty"`
	ReceiptID       *snowflake.ID           `json:"receipt_id,omitempty"`
	CreatedAt       time.Time               `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time               `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Expense) TableName() string { return "expenses" }
