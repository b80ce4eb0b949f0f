package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/gatoke/agencyledger/internal/clock"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	"github.com/gatoke/agencyledger/internal/receipt/domain"
	"github.com/gatoke/agencyledger/internal/receipt/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newReceiptService(t *testing.T, clk clock.Clock) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Receipt{},
		&domain.ReceiptCounter{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	})

	return svc, db, node
}

func issueRequest(node *snowflake.Node, date time.Time) domain.IssueRequest {
	return domain.IssueRequest{
		Source:    ledgerdomain.SourceTypeCandidatePayment,
		PayerType: domain.PayerTypeCandidate,
		PayerID:   node.Generate(),
		Amount:    5000,
		Currency:  "BIF",
		Date:      date,
	}
}

func TestIssueReceiptNumberFormat(t *testing.T) {
	svc, _, node := newReceiptService(t, clock.NewSystemClock())
	date := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	receipt, err := svc.Issue(context.Background(), nil, issueRequest(node, date))
	require.NoError(t, err)
	assert.Equal(t, "REC-CAND-2025-0001", receipt.ReceiptNumber)
	assert.NotEmpty(t, receipt.VerificationCode)
	assert.Equal(t, int64(5000), receipt.Amount)
}

func TestIssueSequencesPerPrefixAndYear(t *testing.T) {
	svc, _, node := newReceiptService(t, clock.NewSystemClock())
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		receipt, err := svc.Issue(ctx, nil, issueRequest(node, date))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("REC-CAND-2025-%04d", i), receipt.ReceiptNumber)
	}

	// A different prefix keeps its own sequence.
	salary, err := svc.Issue(ctx, nil, domain.IssueRequest{
		Source:    ledgerdomain.SourceTypeSalaryPayment,
		PayerType: domain.PayerTypeEmployee,
		PayerID:   node.Generate(),
		Amount:    3000,
		Currency:  "BIF",
		Date:      date,
	})
	require.NoError(t, err)
	assert.Equal(t, "REC-SAL-2025-0001", salary.ReceiptNumber)
}

func TestIssueYearRollover(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	svc, _, node := newReceiptService(t, clk)
	ctx := context.Background()

	december, err := svc.Issue(ctx, nil, issueRequest(node, clk.Now()))
	require.NoError(t, err)
	assert.Equal(t, "REC-CAND-2025-0001", december.ReceiptNumber)

	clk.Advance(2 * time.Hour)
	january, err := svc.Issue(ctx, nil, issueRequest(node, clk.Now()))
	require.NoError(t, err)
	assert.Equal(t, "REC-CAND-2026-0001", january.ReceiptNumber, "sequence restarts each year")
}

func TestIssueConcurrentNumbersUnique(t *testing.T) {
	svc, _, node := newReceiptService(t, clock.NewSystemClock())
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool, workers)
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			receipt, err := svc.Issue(context.Background(), nil, issueRequest(node, date))
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			numbers[receipt.ReceiptNumber] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, workers, "every receipt number is unique")
}

func TestIssueValidation(t *testing.T) {
	svc, _, node := newReceiptService(t, clock.NewSystemClock())
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	req := issueRequest(node, date)
	req.Source = ledgerdomain.SourceTypeReversal
	_, err := svc.Issue(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidSource)

	req = issueRequest(node, date)
	req.PayerType = "VENDOR"
	_, err = svc.Issue(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPayerType)

	req = issueRequest(node, date)
	req.PayerID = 0
	_, err = svc.Issue(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPayer)

	req = issueRequest(node, date)
	req.Amount = 0
	_, err = svc.Issue(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	req = issueRequest(node, date)
	req.Date = time.Time{}
	_, err = svc.Issue(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestListAndGetByNumber(t *testing.T) {
	svc, _, node := newReceiptService(t, clock.NewSystemClock())
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	issued, err := svc.Issue(ctx, nil, issueRequest(node, date))
	require.NoError(t, err)

	receipts, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, issued.ReceiptNumber, receipts[0].ReceiptNumber)

	found, err := svc.GetByNumber(ctx, issued.ReceiptNumber)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)

	_, err = svc.GetByNumber(ctx, "REC-CAND-1999-0001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
