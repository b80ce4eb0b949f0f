package agency

import (
	"context"

	"github.com/gatoke/agencyledger/internal/agency/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("agency",
	fx.Provide(NewRepository),
)

type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) Default(ctx context.Context, db *gorm.DB) (*domain.Agency, error) {
	var agency domain.Agency
	err := db.WithContext(ctx).
		Raw(`SELECT id, name, country, city, created_at, updated_at FROM agencies ORDER BY id LIMIT 1`).
		Scan(&agency).Error
	if err != nil {
		return nil, err
	}
	if agency.ID == 0 {
		return nil, nil
	}
	return &agency, nil
}
