package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	FullName      string
	Role          string
	Phone         string
	MonthlySalary int64
}

type Service interface {
	Create(context.Context, CreateEmployeeRequest) (Employee, error)
	List(context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error)
}

var (
	ErrInvalidName   = errors.New("invalid_full_name")
	ErrInvalidSalary = errors.New("invalid_monthly_salary")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
	ErrNoAgency      = errors.New("no_agency")
)
