package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// Default returns the agency the deployment operates for.
	Default(ctx context.Context, db *gorm.DB) (*Agency, error)
}
