package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Agency is the owning tenant for accounts, candidates and employees.
type Agency struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Country   string       `gorm:"type:text" json:"country,omitempty"`
	City      string       `gorm:"type:text" json:"city,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Agency) TableName() string { return "agencies" }
