package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	"github.com/gatoke/agencyledger/internal/supplier/domain"
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
		log:      p.Log.Named("supplier.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		agencies: p.Agencies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Supplier{}, domain.ErrInvalidName
	}

	agency, err := s.agencies.Default(ctx, s.db)
	if err != nil {
		return domain.Supplier{}, err
	}
	if agency == nil {
		return domain.Supplier{}, domain.ErrNoAgency
	}

	now := time.Now().UTC()
	supplier := domain.Supplier{
		ID:        s.genID.Generate(),
		AgencyID:  agency.ID,
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &supplier); err != nil {
		return domain.Supplier{}, err
	}

	return supplier, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Supplier, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	suppliers := make([]domain.Supplier, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		suppliers = append(suppliers, *item)
	}
	return suppliers, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Supplier, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.Supplier{}, domain.ErrInvalidID
	}

	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	if supplier == nil {
		return domain.Supplier{}, domain.ErrNotFound
	}
	return *supplier, nil
}

func (s *Service) Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error) {
	if tx == nil {
		tx = s.db
	}
	return s.repo.Exists(ctx, tx, id)
}
