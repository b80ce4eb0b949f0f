package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	"github.com/gatoke/agencyledger/internal/candidate/domain"
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
		log:      p.Log.Named("candidate.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		agencies: p.Agencies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCandidateRequest) (domain.Candidate, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.Candidate{}, domain.ErrInvalidName
	}

	agency, err := s.agencies.Default(ctx, s.db)
	if err != nil {
		return domain.Candidate{}, err
	}
	if agency == nil {
		return domain.Candidate{}, domain.ErrNoAgency
	}

	now := time.Now().UTC()
	candidate := domain.Candidate{
		ID:          s.genID.Generate(),
		AgencyID:    agency.ID,
		FullName:    fullName,
		Passport:    strings.TrimSpace(req.Passport),
		Phone:       strings.TrimSpace(req.Phone),
		Destination: strings.TrimSpace(req.Destination),
		Status:      domain.CandidateStatusRegistered,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &candidate); err != nil {
		return domain.Candidate{}, err
	}

	return candidate, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Candidate, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		candidates = append(candidates, *item)
	}
	return candidates, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Candidate, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil || id == 0 {
		return domain.Candidate{}, domain.ErrInvalidID
	}

	candidate, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Candidate{}, err
	}
	if candidate == nil {
		return domain.Candidate{}, domain.ErrNotFound
	}
	return *candidate, nil
}

func (s *Service) Exists(ctx context.Context, tx *gorm.DB, id snowflake.ID) (bool, error) {
	if tx == nil {
		tx = s.db
	}
	return s.repo.Exists(ctx, tx, id)
}
