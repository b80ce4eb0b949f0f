package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	"github.com/gatoke/agencyledger/internal/clock"
	"github.com/gatoke/agencyledger/internal/ledger/domain"
	"github.com/gatoke/agencyledger/pkg/db"
	"github.com/gatoke/agencyledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Accounts accountdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	accounts accountdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ledger.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		accounts: p.Accounts,
	}
}

func (s *Service) Post(ctx context.Context, tx *gorm.DB, req domain.PostRequest) (*domain.JournalEntry, error) {
	if err := validatePost(req); err != nil {
		return nil, err
	}

	if tx != nil {
		return s.post(ctx, tx, req)
	}

	var entry *domain.JournalEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posted, err := s.post(ctx, tx, req)
		if err != nil {
			return err
		}
		entry = posted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// post applies the signed balance delta and appends the entry inside tx.
// The account row update serializes concurrent postings, so the
// balance_after snapshot is consistent with insertion order.
func (s *Service) post(ctx context.Context, tx *gorm.DB, req domain.PostRequest) (*domain.JournalEntry, error) {
	delta := req.Amount
	if req.Type == domain.EntryTypeExit {
		delta = -req.Amount
	}

	balanceAfter, err := s.accounts.AdjustBalance(ctx, tx, req.AccountID, delta, req.Currency)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		ID:           s.genID.Generate(),
		AgencyID:     req.AgencyID,
		AccountID:    req.AccountID,
		Type:         req.Type,
		Amount:       req.Amount,
		Currency:     req.Currency,
		SourceType:   req.SourceType,
		SourceID:     req.SourceID,
		BalanceAfter: balanceAfter,
		OccurredAt:   req.OccurredAt.UTC(),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, tx, entry); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateSource
		}
		return nil, err
	}

	s.log.Info("journal entry posted",
		zap.String("entry_id", entry.ID.String()),
		zap.String("account_id", entry.AccountID.String()),
		zap.String("type", string(entry.Type)),
		zap.String("source_type", string(entry.SourceType)),
		zap.Int64("amount", entry.Amount),
		zap.Int64("balance_after", entry.BalanceAfter),
	)

	return entry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	filter := domain.ListFilter{
		From: req.From,
		To:   req.To,
	}

	if raw := strings.TrimSpace(req.AccountID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.ListResponse{}, domain.ErrInvalidAccount
		}
		filter.AccountID = id
	}
	if raw := strings.ToUpper(strings.TrimSpace(req.Type)); raw != "" {
		entryType := domain.EntryType(raw)
		if !domain.ValidEntryType(entryType) {
			return domain.ListResponse{}, domain.ErrInvalidEntryType
		}
		filter.Type = entryType
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(entry *domain.JournalEntry) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: entry.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	entries := make([]domain.JournalEntry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}

	return domain.ListResponse{PageInfo: *pageInfo, Entries: entries}, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.JournalEntry, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	entry, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if entry == nil {
		return domain.JournalEntry{}, domain.ErrNotFound
	}
	return *entry, nil
}

func (s *Service) Reverse(ctx context.Context, rawID string) (*domain.JournalEntry, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	var reversal *domain.JournalEntry
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		original, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}

		opposite := domain.EntryTypeExit
		if original.Type == domain.EntryTypeExit {
			opposite = domain.EntryTypeEntry
		}

		posted, err := s.post(ctx, tx, domain.PostRequest{
			AgencyID:   original.AgencyID,
			AccountID:  original.AccountID,
			Type:       opposite,
			Amount:     original.Amount,
			Currency:   original.Currency,
			SourceType: domain.SourceTypeReversal,
			SourceID:   original.ID,
			OccurredAt: s.clock.Now(),
		})
		if err != nil {
			// The unique source index permits one reversal per entry.
			if err == domain.ErrDuplicateSource {
				return domain.ErrAlreadyReversed
			}
			return err
		}
		reversal = posted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

func (s *Service) ActivityByAccount(ctx context.Context) ([]domain.AccountActivity, error) {
	return s.repo.ActivityByAccount(ctx, s.db)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func validatePost(req domain.PostRequest) error {
	if req.AccountID == 0 {
		return domain.ErrInvalidAccount
	}
	if !domain.ValidEntryType(req.Type) {
		return domain.ErrInvalidEntryType
	}
	if req.Amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if !domain.ValidSourceType(req.SourceType) {
		return domain.ErrInvalidSourceType
	}
	if req.SourceID == 0 {
		return domain.ErrInvalidSourceID
	}
	if req.OccurredAt.IsZero() {
		return domain.ErrInvalidOccurredAt
	}
	if strings.TrimSpace(req.Currency) == "" {
		return accountdomain.ErrInvalidCurrency
	}
	return nil
}
