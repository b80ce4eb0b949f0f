package migration

import (
	"github.com/gatoke/agencyledger/internal/config"
	"github.com/gatoke/agencyledger/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}

		if cfg.DefaultAgencyID != 0 {
			return seed.EnsureDefaultAgencyWithID(conn, cfg.DefaultAgencyID)
		}
		return seed.EnsureDefaultAgency(conn)
	}),
)
