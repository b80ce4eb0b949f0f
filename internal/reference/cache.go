package reference

import (
	"context"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/reference/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cache keeps the reference tables in memory. Lookups prime it on first use;
// Refresh re-reads everything, which the admin refresh endpoint calls after
// reference rows change.
type Cache struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository

	mu                sync.RWMutex
	primed            bool
	paymentTypes      map[snowflake.ID]*domain.PaymentType
	revenueTypes      map[snowflake.ID]*domain.RevenueType
	expenseCategories map[snowflake.ID]*domain.ExpenseCategory
	currencies        map[string]*domain.Currency
}

type CacheParams struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

func NewCache(p CacheParams) *Cache {
	return &Cache{
		db:   p.DB,
		log:  p.Log.Named("reference.cache"),
		repo: p.Repo,
	}
}

// Refresh re-reads all reference tables and swaps the cached maps in one
// critical section.
func (c *Cache) Refresh(ctx context.Context) error {
	paymentTypes, err := c.repo.ListPaymentTypes(ctx, c.db)
	if err != nil {
		return err
	}
	revenueTypes, err := c.repo.ListRevenueTypes(ctx, c.db)
	if err != nil {
		return err
	}
	expenseCategories, err := c.repo.ListExpenseCategories(ctx, c.db)
	if err != nil {
		return err
	}
	currencies, err := c.repo.ListCurrencies(ctx, c.db)
	if err != nil {
		return err
	}

	byPaymentType := make(map[snowflake.ID]*domain.PaymentType, len(paymentTypes))
	for _, row := range paymentTypes {
		byPaymentType[row.ID] = row
	}
	byRevenueType := make(map[snowflake.ID]*domain.RevenueType, len(revenueTypes))
	for _, row := range revenueTypes {
		byRevenueType[row.ID] = row
	}
	byCategory := make(map[snowflake.ID]*domain.ExpenseCategory, len(expenseCategories))
	for _, row := range expenseCategories {
		byCategory[row.ID] = row
	}
	byCurrency := make(map[string]*domain.Currency, len(currencies))
	for _, row := range currencies {
		byCurrency[row.Code] = row
	}

	c.mu.Lock()
	c.primed = true
	c.paymentTypes = byPaymentType
	c.revenueTypes = byRevenueType
	c.expenseCategories = byCategory
	c.currencies = byCurrency
	c.mu.Unlock()

	c.log.Debug("reference cache refreshed",
		zap.Int("payment_types", len(byPaymentType)),
		zap.Int("revenue_types", len(byRevenueType)),
		zap.Int("expense_categories", len(byCategory)),
		zap.Int("currencies", len(byCurrency)),
	)
	return nil
}

func (c *Cache) ensure(ctx context.Context) error {
	c.mu.RLock()
	primed := c.primed
	c.mu.RUnlock()
	if primed {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Cache) PaymentType(ctx context.Context, id snowflake.ID) (*domain.PaymentType, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	row := c.paymentTypes[id]
	c.mu.RUnlock()
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

func (c *Cache) RevenueType(ctx context.Context, id snowflake.ID) (*domain.RevenueType, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	row := c.revenueTypes[id]
	c.mu.RUnlock()
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

func (c *Cache) ExpenseCategory(ctx context.Context, id snowflake.ID) (*domain.ExpenseCategory, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	row := c.expenseCategories[id]
	c.mu.RUnlock()
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

func (c *Cache) Currency(ctx context.Context, code string) (*domain.Currency, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	row := c.currencies[code]
	c.mu.RUnlock()
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

func (c *Cache) PaymentTypes(ctx context.Context) ([]domain.PaymentType, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([]domain.PaymentType, 0, len(c.paymentTypes))
	for _, row := range c.paymentTypes {
		rows = append(rows, *row)
	}
	sortByCode(rows, func(r domain.PaymentType) string { return r.Code })
	return rows, nil
}

func (c *Cache) RevenueTypes(ctx context.Context) ([]domain.RevenueType, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([]domain.RevenueType, 0, len(c.revenueTypes))
	for _, row := range c.revenueTypes {
		rows = append(rows, *row)
	}
	sortByCode(rows, func(r domain.RevenueType) string { return r.Code })
	return rows, nil
}

func (c *Cache) ExpenseCategories(ctx context.Context) ([]domain.ExpenseCategory, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([]domain.ExpenseCategory, 0, len(c.expenseCategories))
	for _, row := range c.expenseCategories {
		rows = append(rows, *row)
	}
	sortByCode(rows, func(r domain.ExpenseCategory) string { return r.Code })
	return rows, nil
}

func (c *Cache) Currencies(ctx context.Context) ([]domain.Currency, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([]domain.Currency, 0, len(c.currencies))
	for _, row := range c.currencies {
		rows = append(rows, *row)
	}
	sortByCode(rows, func(r domain.Currency) string { return r.Code })
	return rows, nil
}

func sortByCode[T any](rows []T, code func(T) string) {
	sort.Slice(rows, func(i, j int) bool { return code(rows[i]) < code(rows[j]) })
}
