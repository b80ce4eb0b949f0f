package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type CandidateStatus string

const (
	CandidateStatusRegistered CandidateStatus = "REGISTERED"
	CandidateStatusInProcess  CandidateStatus = "IN_PROCESS"
	CandidateStatusDeployed   CandidateStatus = "DEPLOYED"
)

func ValidCandidateStatus(s CandidateStatus) bool {
	switch s {
	case CandidateStatusRegistered, CandidateStatusInProcess, CandidateStatusDeployed:
		return true
	default:
		return false
	}
}

// Candidate is a person the agency recruits and deploys abroad.
type Candidate struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	AgencyID    snowflake.ID    `gorm:"not null;index" json:"agency_id"`
	FullName    string          `gorm:"not null" json:"full_name"`
	Passport    string          `gorm:"type:text" json:"passport,omitempty"`
	Phone       string          `gorm:"type:text" json:"phone,omitempty"`
	Destination string          `gorm:"type:text" json:"destination,omitempty"`
	Status      CandidateStatus `gorm:"type:text;not null;default:'REGISTERED'" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Candidate) TableName() string { return "candidates" }
