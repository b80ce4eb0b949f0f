package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, candidate *Candidate) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Candidate, error)
	List(ctx context.Context, db *gorm.DB) ([]*Candidate, error)
	Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
