package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/candidate/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, candidate *domain.Candidate) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO candidates (id, agency_id, full_name, passport, phone, destination, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		candidate.ID,
		candidate.AgencyID,
		candidate.FullName,
		candidate.Passport,
		candidate.Phone,
		candidate.Destination,
		string(candidate.Status),
		candidate.CreatedAt,
		candidate.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Candidate, error) {
	var candidate domain.Candidate
	err := db.WithContext(ctx).Raw(
		`SELECT id, agency_id, full_name, passport, phone, destination, status, created_at, updated_at
		 FROM candidates WHERE id = ?`,
		id,
	).Scan(&candidate).Error
	if err != nil {
		return nil, err
	}
	if candidate.ID == 0 {
		return nil, nil
	}
	return &candidate, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Candidate, error) {
	var candidates []*domain.Candidate
	err := db.WithContext(ctx).
		Model(&domain.Candidate{}).
		Order("created_at desc, id desc").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM candidates WHERE id = ?`, id).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
