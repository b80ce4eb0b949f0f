package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateCandidateRequest struct {
	FullName    string
	Passport    string
	Phone       string
	Destination string
}

type Service interface {
	Create(context.Context, CreateCandidateRequest) (Candidate, error)
	List(context.Context) ([]Candidate, error)
	GetByID(ctx context.Context, id string) (Candidate, error)

	// Exists backs payer validation in the posting path and joins the
	// caller's transaction when tx is non-nil.
	Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error)
}

var (
	ErrInvalidName = errors.New("invalid_full_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
	ErrNoAgency    = errors.New("no_agency")
)
