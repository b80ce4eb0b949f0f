package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	candidatedomain "github.com/gatoke/agencyledger/internal/candidate/domain"
	"github.com/gatoke/agencyledger/internal/clock"
	employeedomain "github.com/gatoke/agencyledger/internal/employee/domain"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	obsmetrics "github.com/gatoke/agencyledger/internal/observability/metrics"
	"github.com/gatoke/agencyledger/internal/posting/domain"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
	"github.com/gatoke/agencyledger/internal/reference"
	refdomain "github.com/gatoke/agencyledger/internal/reference/domain"
	supplierdomain "github.com/gatoke/agencyledger/internal/supplier/domain"
	dbpkg "github.com/gatoke/agencyledger/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// postingRetries bounds re-runs of a posting transaction that lost a
// serialization or lock conflict.
const postingRetries = 3

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Agencies   agencydomain.Repository
	Accounts   accountdomain.Service
	Ledger     ledgerdomain.Service
	Receipts   receiptdomain.Service
	Candidates candidatedomain.Service
	Employees  employeedomain.Service
	Suppliers  supplierdomain.Service
	Reference  *reference.Cache
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	agencies   agencydomain.Repository
	accounts   accountdomain.Service
	ledger     ledgerdomain.Service
	receipts   receiptdomain.Service
	candidates candidatedomain.Service
	employees  employeedomain.Service
	suppliers  supplierdomain.Service
	reference  *reference.Cache
	obsMetrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("posting.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		agencies:   p.Agencies,
		accounts:   p.Accounts,
		ledger:     p.Ledger,
		receipts:   p.Receipts,
		candidates: p.Candidates,
		employees:  p.Employees,
		suppliers:  p.Suppliers,
		reference:  p.Reference,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) CreateCandidatePayment(ctx context.Context, req domain.CreateCandidatePaymentRequest) (*domain.CandidatePaymentResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if req.CandidateID == 0 {
		return nil, domain.ErrInvalidCandidate
	}
	if _, err := s.reference.PaymentType(ctx, req.PaymentTypeID); err != nil {
		if errors.Is(err, refdomain.ErrNotFound) {
			return nil, domain.ErrInvalidPaymentType
		}
		return nil, err
	}
	account, err := s.lookupAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	agency, err := s.defaultAgency(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := domain.CandidatePayment{
		ID:            s.genID.Generate(),
		AgencyID:      agency.ID,
		CandidateID:   req.CandidateID,
		PaymentTypeID: req.PaymentTypeID,
		AccountID:     account.ID,
		Amount:        req.Amount,
		Currency:      account.Currency,
		Date:          req.Date.UTC(),
		Status:        domain.StatusPendingPost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var (
		entry   *ledgerdomain.JournalEntry
		receipt *receiptdomain.Receipt
	)
	err = s.runPosting(ctx, string(ledgerdomain.SourceTypeCandidatePayment), func(tx *gorm.DB) error {
		ok, err := s.candidates.Exists(ctx, tx, req.CandidateID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidCandidate
		}
		if err := s.repo.InsertCandidatePayment(ctx, tx, &row); err != nil {
			return err
		}
		entry, err = s.ledger.Post(ctx, tx, ledgerdomain.PostRequest{
			AgencyID:   agency.ID,
			AccountID:  account.ID,
			Type:       ledgerdomain.EntryTypeEntry,
			Amount:     req.Amount,
			Currency:   account.Currency,
			SourceType: ledgerdomain.SourceTypeCandidatePayment,
			SourceID:   row.ID,
			OccurredAt: row.Date,
		})
		if err != nil {
			return err
		}
		receipt, err = s.receipts.Issue(ctx, tx, receiptdomain.IssueRequest{
			Source:    ledgerdomain.SourceTypeCandidatePayment,
			PayerType: receiptdomain.PayerTypeCandidate,
			PayerID:   req.CandidateID,
			Amount:    req.Amount,
			Currency:  account.Currency,
			Date:      row.Date,
		})
		if err != nil {
			return err
		}
		return s.repo.MarkPosted(ctx, tx, row.TableName(), row.ID, entry.ID, &receipt.ID)
	})
	if err != nil {
		return nil, err
	}

	row.Status = domain.StatusPosted
	row.JournalEntryID = &entry.ID
	row.ReceiptID = &receipt.ID
	return &domain.CandidatePaymentResult{Payment: row, Entry: *entry, Receipt: receipt}, nil
}

func (s *Service) CreateSalaryPayment(ctx context.Context, req domain.CreateSalaryPaymentRequest) (*domain.SalaryPaymentResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if req.EmployeeID == 0 {
		return nil, domain.ErrInvalidEmployee
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return nil, domain.ErrInvalidMonth
	}
	account, err := s.lookupAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	agency, err := s.defaultAgency(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := domain.SalaryPayment{
		ID:         s.genID.Generate(),
		AgencyID:   agency.ID,
		EmployeeID: req.EmployeeID,
		Month:      req.Month,
		AccountID:  account.ID,
		Amount:     req.Amount,
		Currency:   account.Currency,
		Date:       req.Date.UTC(),
		Status:     domain.StatusPendingPost,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var (
		entry   *ledgerdomain.JournalEntry
		receipt *receiptdomain.Receipt
	)
	err = s.runPosting(ctx, string(ledgerdomain.SourceTypeSalaryPayment), func(tx *gorm.DB) error {
		ok, err := s.employees.Exists(ctx, tx, req.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidEmployee
		}
		if err := s.repo.InsertSalaryPayment(ctx, tx, &row); err != nil {
			return err
		}
		entry, err = s.ledger.Post(ctx, tx, ledgerdomain.PostRequest{
			AgencyID:   agency.ID,
			AccountID:  account.ID,
			Type:       ledgerdomain.EntryTypeExit,
			Amount:     req.Amount,
			Currency:   account.Currency,
			SourceType: ledgerdomain.SourceTypeSalaryPayment,
			SourceID:   row.ID,
			OccurredAt: row.Date,
		})
		if err != nil {
			return err
		}
		receipt, err = s.receipts.Issue(ctx, tx, receiptdomain.IssueRequest{
			Source:    ledgerdomain.SourceTypeSalaryPayment,
			PayerType: receiptdomain.PayerTypeEmployee,
			PayerID:   req.EmployeeID,
			Amount:    req.Amount,
			Currency:  account.Currency,
			Date:      row.Date,
		})
		if err != nil {
			return err
		}
		return s.repo.MarkPosted(ctx, tx, row.TableName(), row.ID, entry.ID, &receipt.ID)
	})
	if err != nil {
		return nil, err
	}

	row.Status = domain.StatusPosted
	row.JournalEntryID = &entry.ID
	row.ReceiptID = &receipt.ID
	return &domain.SalaryPaymentResult{Payment: row, Entry: *entry, Receipt: receipt}, nil
}

func (s *Service) CreateManualRevenue(ctx context.Context, req domain.CreateManualRevenueRequest) (*domain.ManualRevenueResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if _, err := s.reference.RevenueType(ctx, req.RevenueTypeID); err != nil {
		if errors.Is(err, refdomain.ErrNotFound) {
			return nil, domain.ErrInvalidRevenueType
		}
		return nil, err
	}
	account, err := s.lookupAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	agency, err := s.defaultAgency(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := domain.ManualRevenue{
		ID:            s.genID.Generate(),
		AgencyID:      agency.ID,
		RevenueTypeID: req.RevenueTypeID,
		AccountID:     account.ID,
		Amount:        req.Amount,
		Currency:      account.Currency,
		Date:          req.Date.UTC(),
		Description:   req.Description,
		Metadata:      req.Metadata,
		Status:        domain.StatusPendingPost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var (
		entry   *ledgerdomain.JournalEntry
		receipt *receiptdomain.Receipt
	)
	err = s.runPosting(ctx, string(ledgerdomain.SourceTypeManualRevenue), func(tx *gorm.DB) error {
		if err := s.repo.InsertManualRevenue(ctx, tx, &row); err != nil {
			return err
		}
		var err error
		entry, err = s.ledger.Post(ctx, tx, ledgerdomain.PostRequest{
			AgencyID:   agency.ID,
			AccountID:  account.ID,
			Type:       ledgerdomain.EntryTypeEntry,
			Amount:     req.Amount,
			Currency:   account.Currency,
			SourceType: ledgerdomain.SourceTypeManualRevenue,
			SourceID:   row.ID,
			OccurredAt: row.Date,
		})
		if err != nil {
			return err
		}
		var receiptID *snowflake.ID
		if req.IssueReceipt {
			receipt, err = s.receipts.Issue(ctx, tx, receiptdomain.IssueRequest{
				Source:    ledgerdomain.SourceTypeManualRevenue,
				PayerType: receiptdomain.PayerTypeOther,
				Amount:    req.Amount,
				Currency:  account.Currency,
				Date:      row.Date,
			})
			if err != nil {
				return err
			}
			receiptID = &receipt.ID
		}
		return s.repo.MarkPosted(ctx, tx, row.TableName(), row.ID, entry.ID, receiptID)
	})
	if err != nil {
		return nil, err
	}

	row.Status = domain.StatusPosted
	row.JournalEntryID = &entry.ID
	if receipt != nil {
		row.ReceiptID = &receipt.ID
	}
	return &domain.ManualRevenueResult{Revenue: row, Entry: *entry, Receipt: receipt}, nil
}

func (s *Service) CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (*domain.ExpenseResult, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if !validBeneficiaryType(req.BeneficiaryType) {
		return nil, domain.ErrInvalidBeneficiary
	}
	if req.BeneficiaryType != receiptdomain.PayerTypeOther && req.BeneficiaryID == 0 {
		return nil, domain.ErrInvalidBeneficiary
	}
	if _, err := s.reference.ExpenseCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, refdomain.ErrNotFound) {
			return nil, domain.ErrInvalidCategory
		}
		return nil, err
	}
	account, err := s.lookupAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	agency, err := s.defaultAgency(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	row := domain.Expense{
		ID:              s.genID.Generate(),
		AgencyID:        agency.ID,
		CategoryID:      req.CategoryID,
		BeneficiaryType: req.BeneficiaryType,
		BeneficiaryID:   req.BeneficiaryID,
		AccountID:       account.ID,
		Amount:          req.Amount,
		Currency:        account.Currency,
		Date:            req.Date.UTC(),
		Description:     req.Description,
		Metadata:        req.Metadata,
		Status:          domain.StatusPendingPost,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var (
		entry   *ledgerdomain.JournalEntry
		receipt *receiptdomain.Receipt
	)
	err = s.runPosting(ctx, string(ledgerdomain.SourceTypeExpense), func(tx *gorm.DB) error {
		if err := s.checkBeneficiary(ctx, tx, req.BeneficiaryType, req.BeneficiaryID); err != nil {
			return err
		}
		if err := s.repo.InsertExpense(ctx, tx, &row); err != nil {
			return err
		}
		var err error
		entry, err = s.ledger.Post(ctx, tx, ledgerdomain.PostRequest{
			AgencyID:   agency.ID,
			AccountID:  account.ID,
			Type:       ledgerdomain.EntryTypeExit,
			Amount:     req.Amount,
			Currency:   account.Currency,
			SourceType: ledgerdomain.SourceTypeExpense,
			SourceID:   row.ID,
			OccurredAt: row.Date,
		})
		if err != nil {
			return err
		}
		var receiptID *snowflake.ID
		if req.IssueReceipt {
			receipt, err = s.receipts.Issue(ctx, tx, receiptdomain.IssueRequest{
				Source:    ledgerdomain.SourceTypeExpense,
				PayerType: req.BeneficiaryType,
				PayerID:   req.BeneficiaryID,
				Amount:    req.Amount,
				Currency:  account.Currency,
				Date:      row.Date,
			})
			if err != nil {
				return err
			}
			receiptID = &receipt.ID
		}
		return s.repo.MarkPosted(ctx, tx, row.TableName(), row.ID, entry.ID, receiptID)
	})
	if err != nil {
		return nil, err
	}

	row.Status = domain.StatusPosted
	row.JournalEntryID = &entry.ID
	if receipt != nil {
		row.ReceiptID = &receipt.ID
	}
	return &domain.ExpenseResult{Expense: row, Entry: *entry, Receipt: receipt}, nil
}

func (s *Service) ListCandidatePayments(ctx context.Context) ([]domain.CandidatePayment, error) {
	items, err := s.repo.ListCandidatePayments(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.CandidatePayment, 0, len(items))
	for _, item := range items {
		if item != nil {
			rows = append(rows, *item)
		}
	}
	return rows, nil
}

func (s *Service) ListSalaryPayments(ctx context.Context) ([]domain.SalaryPayment, error) {
	items, err := s.repo.ListSalaryPayments(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.SalaryPayment, 0, len(items))
	for _, item := range items {
		if item != nil {
			rows = append(rows, *item)
		}
	}
	return rows, nil
}

func (s *Service) ListManualRevenues(ctx context.Context) ([]domain.ManualRevenue, error) {
	items, err := s.repo.ListManualRevenues(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.ManualRevenue, 0, len(items))
	for _, item := range items {
		if item != nil {
			rows = append(rows, *item)
		}
	}
	return rows, nil
}

func (s *Service) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	items, err := s.repo.ListExpenses(ctx, s.db)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Expense, 0, len(items))
	for _, item := range items {
		if item != nil {
			rows = append(rows, *item)
		}
	}
	return rows, nil
}

// runPosting executes fn in a transaction and re-runs it when the database
// reports a serialization or lock conflict. Each attempt sees a fresh
// transaction; after the last attempt the conflict surfaces as ErrConflict.
func (s *Service) runPosting(ctx context.Context, sourceType string, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= postingRetries; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			s.obsMetrics.RecordPosting(sourceType)
			return nil
		}
		if !dbpkg.IsSerializationErr(err) && !dbpkg.IsDuplicateKeyErr(err) {
			s.obsMetrics.RecordPostingFailure(sourceType)
			return err
		}
		s.log.Warn("posting conflict, retrying",
			zap.String("source_type", sourceType),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	s.obsMetrics.RecordPostingFailure(sourceType)
	return domain.ErrConflict
}

func (s *Service) lookupAccount(ctx context.Context, id snowflake.ID) (accountdomain.Account, error) {
	if id == 0 {
		return accountdomain.Account{}, domain.ErrInvalidAccount
	}
	account, err := s.accounts.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, accountdomain.ErrNotFound) || errors.Is(err, accountdomain.ErrInvalidID) {
			return accountdomain.Account{}, domain.ErrInvalidAccount
		}
		return accountdomain.Account{}, err
	}
	return account, nil
}

func (s *Service) defaultAgency(ctx context.Context) (*agencydomain.Agency, error) {
	agency, err := s.agencies.Default(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, domain.ErrNoAgency
	}
	return agency, nil
}

// validBeneficiaryType lists who an expense can be paid to. Candidates never
// receive expense payouts; their money moves through candidate payments.
func validBeneficiaryType(t receiptdomain.PayerType) bool {
	switch t {
	case receiptdomain.PayerTypeSupplier, receiptdomain.PayerTypeEmployee, receiptdomain.PayerTypeOther:
		return true
	default:
		return false
	}
}

func (s *Service) checkBeneficiary(ctx context.Context, tx *gorm.DB, payerType receiptdomain.PayerType, id snowflake.ID) error {
	switch payerType {
	case receiptdomain.PayerTypeSupplier:
		ok, err := s.suppliers.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidBeneficiary
		}
	case receiptdomain.PayerTypeEmployee:
		ok, err := s.employees.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidBeneficiary
		}
	}
	return nil
}
