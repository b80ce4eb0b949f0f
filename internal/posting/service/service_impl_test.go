package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	accountrepo "github.com/gatoke/agencyledger/internal/account/repository"
	accountservice "github.com/gatoke/agencyledger/internal/account/service"
	"github.com/gatoke/agencyledger/internal/agency"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	candidatedomain "github.com/gatoke/agencyledger/internal/candidate/domain"
	candidaterepo "github.com/gatoke/agencyledger/internal/candidate/repository"
	candidateservice "github.com/gatoke/agencyledger/internal/candidate/service"
	"github.com/gatoke/agencyledger/internal/clock"
	employeedomain "github.com/gatoke/agencyledger/internal/employee/domain"
	employeerepo "github.com/gatoke/agencyledger/internal/employee/repository"
	employeeservice "github.com/gatoke/agencyledger/internal/employee/service"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	ledgerrepo "github.com/gatoke/agencyledger/internal/ledger/repository"
	ledgerservice "github.com/gatoke/agencyledger/internal/ledger/service"
	"github.com/gatoke/agencyledger/internal/posting/domain"
	"github.com/gatoke/agencyledger/internal/posting/repository"
	receiptdomain "github.com/gatoke/agencyledger/internal/receipt/domain"
	receiptrepo "github.com/gatoke/agencyledger/internal/receipt/repository"
	receiptservice "github.com/gatoke/agencyledger/internal/receipt/service"
	"github.com/gatoke/agencyledger/internal/reference"
	refdomain "github.com/gatoke/agencyledger/internal/reference/domain"
	refrepo "github.com/gatoke/agencyledger/internal/reference/repository"
	supplierdomain "github.com/gatoke/agencyledger/internal/supplier/domain"
	supplierrepo "github.com/gatoke/agencyledger/internal/supplier/repository"
	supplierservice "github.com/gatoke/agencyledger/internal/supplier/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type postingFixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	accounts accountdomain.Service
	posting  domain.Service

	agencyID      snowflake.ID
	paymentTypeID snowflake.ID
	revenueTypeID snowflake.ID
	categoryID    snowflake.ID
	candidateID   snowflake.ID
	employeeID    snowflake.ID
	supplierID    snowflake.ID
}

func newPostingFixture(t *testing.T) *postingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&accountdomain.Account{},
		&ledgerdomain.JournalEntry{},
		&receiptdomain.Receipt{},
		&receiptdomain.ReceiptCounter{},
		&candidatedomain.Candidate{},
		&employeedomain.Employee{},
		&supplierdomain.Supplier{},
		&refdomain.PaymentType{},
		&refdomain.RevenueType{},
		&refdomain.ExpenseCategory{},
		&refdomain.Currency{},
		&domain.CandidatePayment{},
		&domain.SalaryPayment{},
		&domain.ManualRevenue{},
		&domain.Expense{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	clk := clock.NewSystemClock()
	now := time.Now().UTC()

	f := &postingFixture{db: db, node: node}

	f.agencyID = node.Generate()
	require.NoError(t, db.Create(&agencydomain.Agency{
		ID: f.agencyID, Name: "Main", CreatedAt: now, UpdatedAt: now,
	}).Error)

	f.paymentTypeID = node.Generate()
	require.NoError(t, db.Create(&refdomain.PaymentType{
		ID: f.paymentTypeID, Code: "DEPOSIT", Label: "Deposit", CreatedAt: now,
	}).Error)
	f.revenueTypeID = node.Generate()
	require.NoError(t, db.Create(&refdomain.RevenueType{
		ID: f.revenueTypeID, Code: "COMMISSION", Label: "Commission", CreatedAt: now,
	}).Error)
	f.categoryID = node.Generate()
	require.NoError(t, db.Create(&refdomain.ExpenseCategory{
		ID: f.categoryID, Code: "RENT", Label: "Rent", CreatedAt: now,
	}).Error)

	f.candidateID = node.Generate()
	require.NoError(t, db.Create(&candidatedomain.Candidate{
		ID: f.candidateID, AgencyID: f.agencyID, FullName: "Aline N.",
		Status: candidatedomain.CandidateStatusRegistered, CreatedAt: now, UpdatedAt: now,
	}).Error)
	f.employeeID = node.Generate()
	require.NoError(t, db.Create(&employeedomain.Employee{
		ID: f.employeeID, AgencyID: f.agencyID, FullName: "Eric M.",
		MonthlySalary: 3000, CreatedAt: now, UpdatedAt: now,
	}).Error)
	f.supplierID = node.Generate()
	require.NoError(t, db.Create(&supplierdomain.Supplier{
		ID: f.supplierID, AgencyID: f.agencyID, Name: "Kira Stationery",
		CreatedAt: now, UpdatedAt: now,
	}).Error)

	agencies := agency.NewRepository()

	f.accounts = accountservice.New(accountservice.Params{
		DB: db, Log: log, GenID: node,
		Repo: accountrepo.Provide(), Agencies: agencies,
	})
	ledgerSvc := ledgerservice.New(ledgerservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo: ledgerrepo.Provide(), Accounts: f.accounts,
	})
	receiptSvc := receiptservice.New(receiptservice.Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo: receiptrepo.Provide(),
	})
	candidateSvc := candidateservice.New(candidateservice.Params{
		DB: db, Log: log, GenID: node,
		Repo: candidaterepo.Provide(), Agencies: agencies,
	})
	employeeSvc := employeeservice.New(employeeservice.Params{
		DB: db, Log: log, GenID: node,
		Repo: employeerepo.Provide(), Agencies: agencies,
	})
	supplierSvc := supplierservice.New(supplierservice.Params{
		DB: db, Log: log, GenID: node,
		Repo: supplierrepo.Provide(), Agencies: agencies,
	})
	refCache := reference.NewCache(reference.CacheParams{
		DB: db, Log: log, Repo: refrepo.Provide(),
	})

	f.posting = New(Params{
		DB: db, Log: log, GenID: node, Clock: clk,
		Repo:       repository.Provide(),
		Agencies:   agencies,
		Accounts:   f.accounts,
		Ledger:     ledgerSvc,
		Receipts:   receiptSvc,
		Candidates: candidateSvc,
		Employees:  employeeSvc,
		Suppliers:  supplierSvc,
		Reference:  refCache,
	})

	return f
}

func (f *postingFixture) newAccount(t *testing.T, balance int64) accountdomain.Account {
	t.Helper()
	account, err := f.accounts.Create(context.Background(), accountdomain.CreateAccountRequest{
		Name:           "Main Cash",
		Type:           accountdomain.AccountTypeCash,
		Currency:       "BIF",
		OpeningBalance: balance,
	})
	require.NoError(t, err)
	return account
}

func (f *postingFixture) balance(t *testing.T, id snowflake.ID) int64 {
	t.Helper()
	account, err := f.accounts.GetByID(context.Background(), id.String())
	require.NoError(t, err)
	return account.Balance
}

func TestCreateCandidatePayment(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 100000)
	ctx := context.Background()

	result, err := f.posting.CreateCandidatePayment(ctx, domain.CreateCandidatePaymentRequest{
		CandidateID:   f.candidateID,
		PaymentTypeID: f.paymentTypeID,
		AccountID:     account.ID,
		Amount:        5000,
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPosted, result.Payment.Status)
	assert.Equal(t, ledgerdomain.EntryTypeEntry, result.Entry.Type)
	assert.Equal(t, int64(105000), result.Entry.BalanceAfter)
	require.NotNil(t, result.Receipt)
	assert.True(t, strings.HasPrefix(result.Receipt.ReceiptNumber, "REC-CAND-2025-"))
	assert.Equal(t, receiptdomain.PayerTypeCandidate, result.Receipt.PayerType)

	assert.Equal(t, int64(105000), f.balance(t, account.ID))

	var row domain.CandidatePayment
	require.NoError(t, f.db.First(&row, "id = ?", result.Payment.ID).Error)
	assert.Equal(t, domain.StatusPosted, row.Status)
	require.NotNil(t, row.JournalEntryID)
	assert.Equal(t, result.Entry.ID, *row.JournalEntryID)
	require.NotNil(t, row.ReceiptID)
	assert.Equal(t, result.Receipt.ID, *row.ReceiptID)
}

func TestCreateExpense(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 105000)
	ctx := context.Background()

	result, err := f.posting.CreateExpense(ctx, domain.CreateExpenseRequest{
		CategoryID:      f.categoryID,
		BeneficiaryType: receiptdomain.PayerTypeOther,
		AccountID:       account.ID,
		Amount:          20000,
		Date:            time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Description:     "office rent",
		IssueReceipt:    false,
	})
	require.NoError(t, err)

	assert.Equal(t, ledgerdomain.EntryTypeExit, result.Entry.Type)
	assert.Equal(t, int64(85000), result.Entry.BalanceAfter)
	assert.Nil(t, result.Receipt)
	assert.Equal(t, int64(85000), f.balance(t, account.ID))
}

func TestCreateExpenseSupplierBeneficiary(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 50000)
	ctx := context.Background()

	result, err := f.posting.CreateExpense(ctx, domain.CreateExpenseRequest{
		CategoryID:      f.categoryID,
		BeneficiaryType: receiptdomain.PayerTypeSupplier,
		BeneficiaryID:   f.supplierID,
		AccountID:       account.ID,
		Amount:          8000,
		Date:            time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		Description:     "office supplies",
		IssueReceipt:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, ledgerdomain.EntryTypeExit, result.Entry.Type)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, receiptdomain.PayerTypeSupplier, result.Receipt.PayerType)
	assert.Equal(t, f.supplierID, result.Receipt.PayerID)
	assert.Equal(t, int64(42000), f.balance(t, account.ID))
}

func TestConcurrentSalaryPayments(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 10000)

	months := []string{"2025-05", "2025-06"}
	var wg sync.WaitGroup
	for _, month := range months {
		wg.Add(1)
		go func(month string) {
			defer wg.Done()
			_, err := f.posting.CreateSalaryPayment(context.Background(), domain.CreateSalaryPaymentRequest{
				EmployeeID: f.employeeID,
				Month:      month,
				AccountID:  account.ID,
				Amount:     3000,
				Date:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			})
			if err != nil {
				t.Error(err)
			}
		}(month)
	}
	wg.Wait()

	assert.Equal(t, int64(4000), f.balance(t, account.ID))

	// The two postings serialized: their snapshots are distinct steps of
	// the same chain.
	var entries []ledgerdomain.JournalEntry
	require.NoError(t, f.db.Find(&entries, "account_id = ?", account.ID).Error)
	require.Len(t, entries, 2)
	snapshots := map[int64]bool{entries[0].BalanceAfter: true, entries[1].BalanceAfter: true}
	assert.True(t, snapshots[7000])
	assert.True(t, snapshots[4000])
}

func TestManualRevenueReceiptOptional(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 0)
	ctx := context.Background()
	date := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	without, err := f.posting.CreateManualRevenue(ctx, domain.CreateManualRevenueRequest{
		RevenueTypeID: f.revenueTypeID,
		AccountID:     account.ID,
		Amount:        1000,
		Date:          date,
		IssueReceipt:  false,
	})
	require.NoError(t, err)
	assert.Nil(t, without.Receipt)
	assert.Nil(t, without.Revenue.ReceiptID)

	with, err := f.posting.CreateManualRevenue(ctx, domain.CreateManualRevenueRequest{
		RevenueTypeID: f.revenueTypeID,
		AccountID:     account.ID,
		Amount:        2000,
		Date:          date,
		Description:   "translation services",
		Metadata:      map[string]any{"client": "Acme"},
		IssueReceipt:  true,
	})
	require.NoError(t, err)
	require.NotNil(t, with.Receipt)
	assert.True(t, strings.HasPrefix(with.Receipt.ReceiptNumber, "REC-REV-2025-"))

	var receipts int64
	require.NoError(t, f.db.Model(&receiptdomain.Receipt{}).Count(&receipts).Error)
	assert.Equal(t, int64(1), receipts)

	assert.Equal(t, int64(3000), f.balance(t, account.ID))
}

func TestPostingRollsBackAsOneUnit(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 50000)
	ctx := context.Background()

	// Break receipt issuance so the posting transaction fails after the
	// journal entry was written.
	require.NoError(t, f.db.Exec("DROP TABLE receipt_counters").Error)

	_, err := f.posting.CreateCandidatePayment(ctx, domain.CreateCandidatePaymentRequest{
		CandidateID:   f.candidateID,
		PaymentTypeID: f.paymentTypeID,
		AccountID:     account.ID,
		Amount:        5000,
		Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var payments, entries int64
	require.NoError(t, f.db.Model(&domain.CandidatePayment{}).Count(&payments).Error)
	require.NoError(t, f.db.Model(&ledgerdomain.JournalEntry{}).Count(&entries).Error)
	assert.Equal(t, int64(0), payments)
	assert.Equal(t, int64(0), entries)
	assert.Equal(t, int64(50000), f.balance(t, account.ID))
}

func TestCreateCandidatePaymentValidation(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 0)
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	base := domain.CreateCandidatePaymentRequest{
		CandidateID:   f.candidateID,
		PaymentTypeID: f.paymentTypeID,
		AccountID:     account.ID,
		Amount:        5000,
		Date:          date,
	}

	req := base
	req.Amount = 0
	_, err := f.posting.CreateCandidatePayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	req = base
	req.Date = time.Time{}
	_, err = f.posting.CreateCandidatePayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = base
	req.PaymentTypeID = f.node.Generate()
	_, err = f.posting.CreateCandidatePayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentType)

	req = base
	req.CandidateID = f.node.Generate()
	_, err = f.posting.CreateCandidatePayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCandidate)

	req = base
	req.AccountID = f.node.Generate()
	_, err = f.posting.CreateCandidatePayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAccount)
}

func TestCreateSalaryPaymentValidation(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 10000)
	ctx := context.Background()

	base := domain.CreateSalaryPaymentRequest{
		EmployeeID: f.employeeID,
		Month:      "2025-06",
		AccountID:  account.ID,
		Amount:     3000,
		Date:       time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}

	req := base
	req.Month = "June 2025"
	_, err := f.posting.CreateSalaryPayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	req = base
	req.Month = "2025-13"
	_, err = f.posting.CreateSalaryPayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)

	req = base
	req.EmployeeID = f.node.Generate()
	_, err = f.posting.CreateSalaryPayment(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidEmployee)
}

func TestCreateExpenseValidation(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 10000)
	ctx := context.Background()
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	base := domain.CreateExpenseRequest{
		CategoryID:      f.categoryID,
		BeneficiaryType: receiptdomain.PayerTypeEmployee,
		BeneficiaryID:   f.employeeID,
		AccountID:       account.ID,
		Amount:          2000,
		Date:            date,
	}

	req := base
	req.CategoryID = f.node.Generate()
	_, err := f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	req = base
	req.BeneficiaryType = "VENDOR"
	_, err = f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidBeneficiary)

	// Candidates are paid through candidate payments, never as expense
	// beneficiaries.
	req = base
	req.BeneficiaryType = receiptdomain.PayerTypeCandidate
	req.BeneficiaryID = f.candidateID
	_, err = f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidBeneficiary)

	req = base
	req.BeneficiaryType = receiptdomain.PayerTypeSupplier
	req.BeneficiaryID = f.node.Generate()
	_, err = f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidBeneficiary)

	req = base
	req.BeneficiaryID = 0
	_, err = f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidBeneficiary)

	req = base
	req.BeneficiaryID = f.node.Generate()
	_, err = f.posting.CreateExpense(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidBeneficiary)
}

func TestListTransactions(t *testing.T) {
	f := newPostingFixture(t)
	account := f.newAccount(t, 100000)
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.posting.CreateCandidatePayment(ctx, domain.CreateCandidatePaymentRequest{
		CandidateID:   f.candidateID,
		PaymentTypeID: f.paymentTypeID,
		AccountID:     account.ID,
		Amount:        5000,
		Date:          date,
	})
	require.NoError(t, err)

	_, err = f.posting.CreateExpense(ctx, domain.CreateExpenseRequest{
		CategoryID:      f.categoryID,
		BeneficiaryType: receiptdomain.PayerTypeOther,
		AccountID:       account.ID,
		Amount:          1000,
		Date:            date,
	})
	require.NoError(t, err)

	payments, err := f.posting.ListCandidatePayments(ctx)
	require.NoError(t, err)
	assert.Len(t, payments, 1)

	expenses, err := f.posting.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)

	salaries, err := f.posting.ListSalaryPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, salaries)
}
