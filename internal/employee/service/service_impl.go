package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	"github.com/gatoke/agencyledger/internal/employee/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Agencies agencydomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	agencies agencydomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("employee.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		agencies: p.Agencies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (domain.Employee, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.Employee{}, domain.ErrInvalidName
	}
	if req.MonthlySalary < 0 {
		return domain.Employee{}, domain.ErrInvalidSalary
	}

	agency, err := s.agencies.Default(ctx, s.db)
	if err != nil {
		return domain.Employee{}, err
	}
	if agency == nil {
		return domain.Employee{}, domain.ErrNoAgency
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		ID:            s.genID.Generate(),
		AgencyID:      agency.ID,
		FullName:      fullName,
		Role:          strings.TrimSpace(req.Role),
		Phone:         strings.TrimSpace(req.Phone),
		MonthlySalary: req.MonthlySalary,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &employee); err != nil {
		return domain.Employee{}, err
	}

	return employee, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		employees = append(employees, *item)
	}
	return employees, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Employee, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.Employee{}, domain.ErrInvalidID
	}

	employee, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Employee{}, err
	}
	if employee == nil {
		return domain.Employee{}, domain.ErrNotFound
	}
	return *employee, nil
}

func (s *Service) Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error) {
	if tx == nil {
		tx = s.db
	}
	return s.repo.Exists(ctx, tx, id)
}
