package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
)

type CreateCandidatePaymentRequest struct {
	CandidateID   snowflake.ID
	PaymentTypeID snowflake.ID
	AccountID     snowflake.ID
	Amount        int64
	Date          time.Time
}

type CreateSalaryPaymentRequest struct {
	EmployeeID snowflake.ID
	Month      string // YYYY-MM
	AccountID  snowflake.ID
	Amount     int64
	Date       time.Time
}

type CreateManualRevenueRequest struct {
	RevenueTypeID snowflake.ID
	AccountID     snowflake.ID
	Amount        int64
	Date          time.Time
	Description   string
	Metadata      map[string]any
	IssueReceipt  bool
}

type CreateExpenseRequest struct {
	CategoryID      snowflake.ID
	BeneficiaryType receiptdomain.PayerType
	BeneficiaryID   snowflake.ID
	AccountID       snowflake.ID
	Amount          int64
	Date            time.Time
	Description     string
	Metadata        map[string]any
	IssueReceipt    bool
}

// Result bundles the committed transaction row with the journal entry it
// produced and the receipt, when one was issued.
type CandidatePaymentResult struct {
	Payment CandidatePayment          `json:"payment"`
	Entry   ledgerdomain.JournalEntry `json:"journal_entry"`
	Receipt *receiptdomain.Receipt    `json:"receipt,omitempty"`
}

type SalaryPaymentResult struct {
	Payment SalaryPayment             `json:"payment"`
	Entry   ledgerdomain.JournalEntry `json:"journal_entry"`
	Receipt *receiptdomain.Receipt    `json:"receipt,omitempty"`
}

type ManualRevenueResult struct {
	Revenue ManualRevenue             `json:"revenue"`
	Entry   ledgerdomain.JournalEntry `json:"journal_entry"`
	Receipt *receiptdomain.Receipt    `json:"receipt,omitempty"`
}

type ExpenseResult struct {
	Expense Expense                   `json:"expense"`
	Entry   ledgerdomain.JournalEntry `json:"journal_entry"`
	Receipt *receiptdomain.Receipt    `json:"receipt,omitempty"`
}

type Service interface {
	// Each Create runs one transaction: insert the row pending_post, post
	// the journal entry, issue the receipt, mark the row posted. The whole
	// unit commits or none of it does.
	CreateCandidatePayment(context.Context, CreateCandidatePaymentRequest) (*CandidatePaymentResult, error)
	CreateSalaryPayment(context.Context, CreateSalaryPaymentRequest) (*SalaryPaymentResult, error)
	CreateManualRevenue(context.Context, CreateManualRevenueRequest) (*ManualRevenueResult, error)
	CreateExpense(context.Context, CreateExpenseRequest) (*ExpenseResult, error)

	ListCandidatePayments(context.Context) ([]CandidatePayment, error)
	ListSalaryPayments(context.Context) ([]SalaryPayment, error)
	ListManualRevenues(context.Context) ([]ManualRevenue, error)
	ListExpenses(context.Context) ([]Expense, error)
}

var (
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidDate        = errors.New("invalid_date")
	ErrInvalidAccount     = errors.New("invalid_account")
	ErrInvalidCandidate   = errors.New("invalid_candidate")
	ErrInvalidPaymentType = errors.New("invalid_payment_type")
	ErrInvalidEmployee    = errors.New("invalid_employee")
	ErrInvalidMonth       = errors.New("invalid_month")
	ErrInvalidRevenueType = errors.New("invalid_revenue_type")
	ErrInvalidCategory    = errors.New("invalid_category")
	ErrInvalidBeneficiary = errors.New("invalid_beneficiary")
	ErrNoAgency           = errors.New("no_agency")

	// ErrConflict is returned after posting retries are exhausted on
	// serialization or lock conflicts.
	ErrConflict = errors.New("posting_conflict")
)
