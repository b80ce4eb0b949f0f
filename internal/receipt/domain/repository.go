package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	NextSequence(ctx context.Context, db *gorm.DB, prefix string, year int) (int64, error)
	List(ctx context.Context, db *gorm.DB, search string, limit int) ([]*Receipt, error)
	FindByNumber(ctx context.Context, db *gorm.DB, number string) (*Receipt, error)
}
