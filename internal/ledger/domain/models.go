package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EntryType resolves the sign of a posting: ENTRY adds to the account
// balance, EXIT subtracts from it.
type EntryType string

const (
	EntryTypeEntry EntryType = "ENTRY"
	EntryTypeExit  EntryType = "EXIT"
)

func ValidEntryType(t EntryType) bool {
	return t == EntryTypeEntry || t == EntryTypeExit
}

// SourceType names the domain row a journal entry was posted for.
type SourceType string

const (
	SourceTypeCandidatePayment SourceType = "candidate_payment"
	SourceTypeSalaryPayment    SourceType = "salary_payment"
	SourceTypeManualRevenue    SourceType = "manual_revenue"
	SourceTypeExpense          SourceType = "expense"

	// SourceTypeReversal marks a compensating entry; its source id is the
	// journal entry being reversed.
	SourceTypeReversal SourceType = "reversal"
)

func ValidSourceType(t SourceType) bool {
	switch t {
	case SourceTypeCandidatePayment, SourceTypeSalaryPayment,
		SourceTypeManualRevenue, SourceTypeExpense, SourceTypeReversal:
		return true
	default:
		return false
	}
}

// JournalEntry is the immutable record of one balance change. Rows are
// never updated or deleted; corrections go through a reversal entry.
// Replaying an account's entries in id order from its opening balance must
// reproduce both the current balance and every BalanceAfter snapshot.
type JournalEntry struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID     snowflake.ID `gorm:"not null;index" json:"agency_id"`
	AccountID    snowflake.ID `gorm:"not null;index" json:"account_id"`
	Type         EntryType    `gorm:"type:text;not null" json:"type"`
	Amount       int64        `gorm:"not null" json:"amount"`
	Currency     string       `gorm:"type:text;not null" json:"currency"`
	SourceType   SourceType   `gorm:"type:text;not null;uniqueIndex:ux_journal_entries_source,priority:1" json:"source_type"`
	SourceID     snowflake.ID `gorm:"not null;uniqueIndex:ux_journal_entries_source,priority:2" json:"source_id"`
	BalanceAfter int64        `gorm:"not null" json:"balance_after"`
	OccurredAt   time.Time    `gorm:"not null;index" json:"date"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (JournalEntry) TableName() string { return "journal_entries" }

// AccountActivity aggregates an account's journal for the dashboard.
type AccountActivity struct {
	AccountID  snowflake.ID `json:"account_id"`
	TotalIn    int64        `json:"total_in"`
	TotalOut   int64        `json:"total_out"`
	EntryCount int64        `json:"entry_count"`
}
