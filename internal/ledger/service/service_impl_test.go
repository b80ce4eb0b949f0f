package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	accountrepo "github.com/gatoke/agencyledger/internal/account/repository"
	accountservice "github.com/gatoke/agencyledger/internal/account/service"
	"github.com/gatoke/agencyledger/internal/agency"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	"github.com/gatoke/agencyledger/internal/clock"
	"github.com/gatoke/agencyledger/internal/ledger/domain"
	"github.com/gatoke/agencyledger/internal/ledger/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ledgerFixture struct {
	db       *gorm.DB
	node     *snowflake.Node
	accounts accountdomain.Service
	ledger   domain.Service
	agencyID snowflake.ID
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&accountdomain.Account{},
		&domain.JournalEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	agencyID := node.Generate()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&agencydomain.Agency{
		ID:        agencyID,
		Name:      "Main",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	accounts := accountservice.New(accountservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     accountrepo.Provide(),
		Agencies: agency.NewRepository(),
	})

	ledger := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewSystemClock(),
		Repo:     repository.Provide(),
		Accounts: accounts,
	})

	return &ledgerFixture{
		db:       db,
		node:     node,
		accounts: accounts,
		ledger:   ledger,
		agencyID: agencyID,
	}
}

func (f *ledgerFixture) newAccount(t *testing.T, balance int64) accountdomain.Account {
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

func (f *ledgerFixture) post(t *testing.T, account accountdomain.Account, entryType domain.EntryType, amount int64) *domain.JournalEntry {
	t.Helper()
	entry, err := f.ledger.Post(context.Background(), nil, domain.PostRequest{
		AgencyID:   f.agencyID,
		AccountID:  account.ID,
		Type:       entryType,
		Amount:     amount,
		Currency:   "BIF",
		SourceType: domain.SourceTypeManualRevenue,
		SourceID:   f.node.Generate(),
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return entry
}

func TestPostSignsByEntryType(t *testing.T) {
	f := newLedgerFixture(t)
	account := f.newAccount(t, 100000)

	entry := f.post(t, account, domain.EntryTypeEntry, 5000)
	assert.Equal(t, int64(105000), entry.BalanceAfter)

	exit := f.post(t, account, domain.EntryTypeExit, 20000)
	assert.Equal(t, int64(85000), exit.BalanceAfter)

	found, err := f.accounts.GetByID(context.Background(), account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(85000), found.Balance)
}

func TestBalanceAfterChainReplays(t *testing.T) {
	f := newLedgerFixture(t)
	opening := int64(10000)
	account := f.newAccount(t, opening)

	f.post(t, account, domain.EntryTypeEntry, 2500)
	f.post(t, account, domain.EntryTypeExit, 400)
	f.post(t, account, domain.EntryTypeEntry, 100)
	f.post(t, account, domain.EntryTypeExit, 7000)

	var entries []domain.JournalEntry
	require.NoError(t, f.db.Find(&entries).Error)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	// Replaying the journal in id order from the opening balance must
	// reproduce every snapshot and the final balance.
	running := opening
	for _, entry := range entries {
		if entry.Type == domain.EntryTypeEntry {
			running += entry.Amount
		} else {
			running -= entry.Amount
		}
		assert.Equal(t, running, entry.BalanceAfter)
	}

	found, err := f.accounts.GetByID(context.Background(), account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, running, found.Balance)
	assert.Equal(t, int64(5200), found.Balance)
}

func TestPostValidation(t *testing.T) {
	f := newLedgerFixture(t)
	account := f.newAccount(t, 0)
	ctx := context.Background()

	base := domain.PostRequest{
		AgencyID:   f.agencyID,
		AccountID:  account.ID,
		Type:       domain.EntryTypeEntry,
		Amount:     100,
		Currency:   "BIF",
		SourceType: domain.SourceTypeManualRevenue,
		SourceID:   f.node.Generate(),
		OccurredAt: time.Now().UTC(),
	}

	req := base
	req.Amount = 0
	_, err := f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	req = base
	req.Amount = -100
	_, err = f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	req = base
	req.Type = "TRANSFER"
	_, err = f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidEntryType)

	req = base
	req.SourceType = "lottery"
	_, err = f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidSourceType)

	req = base
	req.OccurredAt = time.Time{}
	_, err = f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrInvalidOccurredAt)
}

func TestPostDuplicateSource(t *testing.T) {
	f := newLedgerFixture(t)
	account := f.newAccount(t, 1000)
	ctx := context.Background()

	sourceID := f.node.Generate()
	req := domain.PostRequest{
		AgencyID:   f.agencyID,
		AccountID:  account.ID,
		Type:       domain.EntryTypeEntry,
		Amount:     100,
		Currency:   "BIF",
		SourceType: domain.SourceTypeCandidatePayment,
		SourceID:   sourceID,
		OccurredAt: time.Now().UTC(),
	}

	_, err := f.ledger.Post(ctx, nil, req)
	require.NoError(t, err)

	_, err = f.ledger.Post(ctx, nil, req)
	assert.ErrorIs(t, err, domain.ErrDuplicateSource)

	// The duplicate's balance adjustment must have rolled back.
	found, err := f.accounts.GetByID(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1100), found.Balance)
}

func TestListFilters(t *testing.T) {
	f := newLedgerFixture(t)
	first := f.newAccount(t, 0)
	second := f.newAccount(t, 0)
	ctx := context.Background()

	f.post(t, first, domain.EntryTypeEntry, 100)
	f.post(t, first, domain.EntryTypeExit, 50)
	f.post(t, second, domain.EntryTypeEntry, 700)

	resp, err := f.ledger.List(ctx, domain.ListRequest{AccountID: first.ID.String()})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)

	resp, err = f.ledger.List(ctx, domain.ListRequest{Type: "entry"})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	for _, entry := range resp.Entries {
		assert.Equal(t, domain.EntryTypeEntry, entry.Type)
	}

	future := time.Now().UTC().Add(time.Hour)
	resp, err = f.ledger.List(ctx, domain.ListRequest{From: &future})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)

	_, err = f.ledger.List(ctx, domain.ListRequest{Type: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidEntryType)
}

func TestListPaginates(t *testing.T) {
	f := newLedgerFixture(t)
	account := f.newAccount(t, 0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f.post(t, account, domain.EntryTypeEntry, 10)
	}

	resp, err := f.ledger.List(ctx, domain.ListRequest{PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	assert.True(t, resp.HasMore)
	require.NotEmpty(t, resp.NextPageToken)

	seen := map[snowflake.ID]bool{}
	for _, entry := range resp.Entries {
		seen[entry.ID] = true
	}

	resp, err = f.ledger.List(ctx, domain.ListRequest{PageSize: 2, PageToken: resp.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 2)
	for _, entry := range resp.Entries {
		assert.False(t, seen[entry.ID], "pages must not overlap")
	}
}

func TestReverse(t *testing.T) {
	f := newLedgerFixture(t)
	account := f.newAccount(t, 10000)
	ctx := context.Background()

	entry := f.post(t, account, domain.EntryTypeExit, 3000)

	reversal, err := f.ledger.Reverse(ctx, entry.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.EntryTypeEntry, reversal.Type)
	assert.Equal(t, domain.SourceTypeReversal, reversal.SourceType)
	assert.Equal(t, entry.ID, reversal.SourceID)
	assert.Equal(t, int64(10000), reversal.BalanceAfter)

	// Only one reversal per entry.
	_, err = f.ledger.Reverse(ctx, entry.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)

	_, err = f.ledger.Reverse(ctx, f.node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
