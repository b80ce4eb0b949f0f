package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateSupplierRequest struct {
	Name  string
	Phone string
	Email string
}

type Service interface {
	Create(context.Context, CreateSupplierRequest) (Supplier, error)
	List(context.Context) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrNotFound    = errors.New("not_found")
	ErrNoAgency    = errors.New("no_agency")
)
