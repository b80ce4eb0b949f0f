package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/gatoke/agencyledger/internal/account/domain"
	"github.com/gatoke/agencyledger/internal/account/repository"
	"github.com/gatoke/agencyledger/internal/agency"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	ledgerdomain "github.com/gatoke/agencyledger/internal/ledger/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&agencydomain.Agency{},
		&domain.Account{},
		&ledgerdomain.JournalEntry{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Create(&agencydomain.Agency{
		ID:        node.Generate(),
		Name:      "Main",
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)

	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Agencies: agency.NewRepository(),
	})

	return svc, db, node
}

func TestCreateAndGetAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:           "Main Cash",
		Type:           domain.AccountTypeCash,
		Currency:       "bif",
		OpeningBalance: 100000,
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Cash", account.Name)
	assert.Equal(t, "BIF", account.Currency)
	assert.Equal(t, int64(100000), account.Balance)

	found, err := svc.GetByID(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, int64(100000), found.Balance)
}

func TestCreateAccountValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateAccountRequest{Name: "", Type: domain.AccountTypeCash, Currency: "BIF"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateAccountRequest{Name: "X", Type: "WALLET", Currency: "BIF"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	_, err = svc.Create(ctx, domain.CreateAccountRequest{Name: "X", Type: domain.AccountTypeBank, Currency: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestAdjustBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:           "Bank",
		Type:           domain.AccountTypeBank,
		Currency:       "BIF",
		OpeningBalance: 1000,
	})
	require.NoError(t, err)

	balance, err := svc.AdjustBalance(ctx, nil, account.ID, 500, "BIF")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), balance)

	balance, err = svc.AdjustBalance(ctx, nil, account.ID, -2000, "BIF")
	require.NoError(t, err)
	assert.Equal(t, int64(-500), balance, "overdraft is permitted")
}

func TestAdjustBalanceCurrencyMismatch(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "Bank",
		Type:     domain.AccountTypeBank,
		Currency: "BIF",
	})
	require.NoError(t, err)

	_, err = svc.AdjustBalance(ctx, nil, account.ID, 500, "USD")
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	found, err := svc.GetByID(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.Balance)
}

func TestAdjustBalanceNotFound(t *testing.T) {
	svc, _, node := newTestService(t)

	_, err := svc.AdjustBalance(context.Background(), nil, node.Generate(), 500, "BIF")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccount(t *testing.T) {
	svc, db, node := newTestService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "Mobile Money",
		Type:     domain.AccountTypeMobile,
		Currency: "BIF",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, account.ID.String()))
	_, err = svc.GetByID(ctx, account.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// An account with journal history must not be deletable.
	account, err = svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "Bank",
		Type:     domain.AccountTypeBank,
		Currency: "BIF",
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&ledgerdomain.JournalEntry{
		ID:           node.Generate(),
		AgencyID:     account.AgencyID,
		AccountID:    account.ID,
		Type:         ledgerdomain.EntryTypeEntry,
		Amount:       100,
		Currency:     "BIF",
		SourceType:   ledgerdomain.SourceTypeManualRevenue,
		SourceID:     node.Generate(),
		BalanceAfter: 100,
		OccurredAt:   time.Now().UTC(),
		CreatedAt:    time.Now().UTC(),
	}).Error)

	err = svc.Delete(ctx, account.ID.String())
	assert.ErrorIs(t, err, domain.ErrHasTransactions)

	found, err := svc.GetByID(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
}

func TestUpdateAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, domain.CreateAccountRequest{
		Name:     "Cash",
		Type:     domain.AccountTypeCash,
		Currency: "BIF",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.UpdateAccountRequest{
		ID:   account.ID.String(),
		Name: "Petty Cash",
		Type: domain.AccountTypeCash,
	})
	require.NoError(t, err)
	assert.Equal(t, "Petty Cash", updated.Name)

	_, err = svc.Update(ctx, domain.UpdateAccountRequest{ID: "not-a-number", Name: "X", Type: domain.AccountTypeCash})
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
