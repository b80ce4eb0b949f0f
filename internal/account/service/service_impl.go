package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/account/domain"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
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
		log:      p.Log.Named("account.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		agencies: p.Agencies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateAccountRequest) (domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}
	if !domain.ValidAccountType(req.Type) {
		return domain.Account{}, domain.ErrInvalidType
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return domain.Account{}, domain.ErrInvalidCurrency
	}

	agency, err := s.agencies.Default(ctx, s.db)
	if err != nil {
		return domain.Account{}, err
	}
	if agency == nil {
		return domain.Account{}, domain.ErrNoAgency
	}

	now := time.Now().UTC()
	account := domain.Account{
		ID:        s.genID.Generate(),
		AgencyID:  agency.ID,
		Name:      name,
		Type:      req.Type,
		Currency:  currency,
		Balance:   req.OpeningBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &account); err != nil {
		return domain.Account{}, err
	}

	s.log.Info("account created",
		zap.String("account_id", account.ID.String()),
		zap.String("type", string(account.Type)),
		zap.String("currency", account.Currency),
	)

	return account, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateAccountRequest) (domain.Account, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Account{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Account{}, domain.ErrInvalidName
	}
	if !domain.ValidAccountType(req.Type) {
		return domain.Account{}, domain.ErrInvalidType
	}

	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}

	account.Name = name
	account.Type = req.Type
	account.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateDetails(ctx, s.db, account); err != nil {
		return domain.Account{}, err
	}

	return *account, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		accounts = append(accounts, *item)
	}
	return accounts, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Account, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *account, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.ErrNotFound
		}

		entries, err := s.repo.CountJournalEntries(ctx, tx, id)
		if err != nil {
			return err
		}
		if entries > 0 {
			return domain.ErrHasTransactions
		}

		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *Service) AdjustBalance(ctx context.Context, tx *gorm.DB, id snowflake.ID, delta int64, currency string) (int64, error) {
	if tx == nil {
		tx = s.db
	}
	return s.repo.AdjustBalance(ctx, tx, id, delta, currency)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
