package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/clock"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	obsmetrics "github.com/gatoke/agencyledger/internal/observability/metrics"
	"github.com/gatoke/agencyledger/internal/receipt/domain"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("receipt.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		obsMetrics: p.ObsMetrics,
	}
}

var prefixBySource = map[ledgerdomain.SourceType]string{
	ledgerdomain.SourceTypeCandidatePayment: "CAND",
	ledgerdomain.SourceTypeSalaryPayment:    "SAL",
	ledgerdomain.SourceTypeManualRevenue:    "REV",
	ledgerdomain.SourceTypeExpense:          "EXP",
}

func (s *Service) Issue(ctx context.Context, tx *gorm.DB, req domain.IssueRequest) (*domain.Receipt, error) {
	prefix, ok := prefixBySource[req.Source]
	if !ok {
		return nil, domain.ErrInvalidSource
	}
	if !domain.ValidPayerType(req.PayerType) {
		return nil, domain.ErrInvalidPayerType
	}
	if req.PayerType != domain.PayerTypeOther && req.PayerID == 0 {
		return nil, domain.ErrInvalidPayer
	}
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, domain.ErrInvalidCurrency
	}
	date := req.Date
	if date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	if tx == nil {
		tx = s.db
	}

	year := date.UTC().Year()
	seq, err := s.repo.NextSequence(ctx, tx, prefix, year)
	if err != nil {
		return nil, err
	}

	receipt := &domain.Receipt{
		ID:               s.genID.Generate(),
		ReceiptNumber:    fmt.Sprintf("REC-%s-%d-%04d", prefix, year, seq),
		Date:             date.UTC(),
		PayerType:        req.PayerType,
		PayerID:          req.PayerID,
		Amount:           req.Amount,
		Currency:         currency,
		VerificationCode: uuid.NewString(),
		CreatedAt:        s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, tx, receipt); err != nil {
		return nil, err
	}

	s.obsMetrics.RecordReceipt()
	s.log.Info("receipt issued",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("payer_type", string(receipt.PayerType)),
		zap.Int64("amount", receipt.Amount),
	)

	return receipt, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Receipt, error) {
	limit := req.PageSize
	if limit <= 0 {
		limit = 200
	}

	items, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.Search), limit)
	if err != nil {
		return nil, err
	}

	receipts := make([]domain.Receipt, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receipts = append(receipts, *item)
	}
	return receipts, nil
}

func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Receipt, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return domain.Receipt{}, domain.ErrNotFound
	}

	receipt, err := s.repo.FindByNumber(ctx, s.db, number)
	if err != nil {
		return domain.Receipt{}, err
	}
	if receipt == nil {
		return domain.Receipt{}, domain.ErrNotFound
	}
	return *receipt, nil
}
