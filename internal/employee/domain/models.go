package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Employee is agency staff paid through salary payments.
type Employee struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	AgencyID      snowflake.ID `gorm:"not null;index" json:"agency_id"`
	FullName      string       `gorm:"not null" json:"full_name"`
	Role          string       `gorm:"type:text" json:"role,omitempty"`
	Phone         string       `gorm:"type:text" json:"phone,omitempty"`
	MonthlySalary int64        `gorm:"not null;default:0" json:"monthly_salary"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Employee) TableName() string { return "employees" }
