package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/employee/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employee *domain.Employee) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO employees (id, agency_id, full_name, role, phone, monthly_salary, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		employee.ID,
		employee.AgencyID,
		employee.FullName,
		employee.Role,
		employee.Phone,
		employee.MonthlySalary,
		employee.CreatedAt,
		employee.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := db.WithContext(ctx).Raw(
		`SELECT id, agency_id, full_name, role, phone, monthly_salary, created_at, updated_at
		 FROM employees WHERE id = ?`,
		id,
	).Scan(&employee).Error
	if err != nil {
		return nil, err
	}
	if employee.ID == 0 {
		return nil, nil
	}
	return &employee, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	err := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Order("created_at desc, id desc").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM employees WHERE id = ?`, id).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
