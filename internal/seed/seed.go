package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/gatoke/agencyledger/internal/account/domain"
	agencydomain "github.com/gatoke/agencyledger/internal/agency/domain"
	refdomain "github.com/gatoke/agencyledger/internal/reference/domain"
	"gorm.io/gorm"
)

const (
	defaultAgencyName = "Main"
	defaultCurrency   = "BIF"
)

var defaultAccounts = []struct {
	Name string
	Type accountdomain.AccountType
}{
	{Name: "Main Cash", Type: accountdomain.AccountTypeCash},
	{Name: "Bank", Type: accountdomain.AccountTypeBank},
	{Name: "Mobile Money", Type: accountdomain.AccountTypeMobile},
}

// EnsureDefaultAgency seeds the default agency, its three money accounts and
// the baseline reference rows for startup bootstrap.
func EnsureDefaultAgency(db *gorm.DB) error {
	return ensure(db, 0)
}

// EnsureDefaultAgencyWithID pins the seeded agency to a configured id so
// environments can share fixtures.
func EnsureDefaultAgencyWithID(db *gorm.DB, agencyID int64) error {
	return ensure(db, snowflake.ID(agencyID))
}

func ensure(db *gorm.DB, agencyID snowflake.ID) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agency, err := ensureAgencyTx(ctx, tx, node, agencyID)
		if err != nil {
			return err
		}
		if err := ensureAccountsTx(ctx, tx, node, agency.ID); err != nil {
			return err
		}
		return ensureReferenceRowsTx(ctx, tx, node)
	})
}

func ensureAgencyTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, agencyID snowflake.ID) (*agencydomain.Agency, error) {
	var agency agencydomain.Agency
	err := tx.WithContext(ctx).Order("id").First(&agency).Error
	if err == nil {
		return &agency, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if agencyID == 0 {
		agencyID = node.Generate()
	}
	now := time.Now().UTC()
	agency = agencydomain.Agency{
		ID:        agencyID,
		Name:      defaultAgencyName,
		Country:   "Burundi",
		City:      "Bujumbura",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&agency).Error; err != nil {
		return nil, err
	}
	return &agency, nil
}

func ensureAccountsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, agencyID snowflake.ID) error {
	var count int64
	err := tx.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("agency_id = ?", agencyID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, spec := range defaultAccounts {
		account := accountdomain.Account{
			ID:        node.Generate(),
			AgencyID:  agencyID,
			Name:      spec.Name,
			Type:      spec.Type,
			Currency:  defaultCurrency,
			Balance:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureReferenceRowsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()

	var paymentTypes int64
	if err := tx.WithContext(ctx).Model(&refdomain.PaymentType{}).Count(&paymentTypes).Error; err != nil {
		return err
	}
	if paymentTypes == 0 {
		for _, row := range []refdomain.PaymentType{
			{Code: "DEPOSIT", Label: "Deposit"},
			{Code: "INSTALLMENT", Label: "Installment"},
			{Code: "FINAL", Label: "Final payment"},
		} {
			row.ID = node.Generate()
			row.CreatedAt = now
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
	}

	var revenueTypes int64
	if err := tx.WithContext(ctx).Model(&refdomain.RevenueType{}).Count(&revenueTypes).Error; err != nil {
		return err
	}
	if revenueTypes == 0 {
		for _, row := range []refdomain.RevenueType{
			{Code: "COMMISSION", Label: "Commission"},
			{Code: "SERVICE", Label: "Service fees"},
			{Code: "OTHER", Label: "Other income"},
		} {
			row.ID = node.Generate()
			row.CreatedAt = now
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
	}

	var categories int64
	if err := tx.WithContext(ctx).Model(&refdomain.ExpenseCategory{}).Count(&categories).Error; err != nil {
		return err
	}
	if categories == 0 {
		for _, row := range []refdomain.ExpenseCategory{
			{Code: "RENT", Label: "Rent"},
			{Code: "UTILITIES", Label: "Utilities"},
			{Code: "TRANSPORT", Label: "Transport"},
			{Code: "OTHER", Label: "Other expenses"},
		} {
			row.ID = node.Generate()
			row.CreatedAt = now
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
	}

	var currencies int64
	if err := tx.WithContext(ctx).Model(&refdomain.Currency{}).Count(&currencies).Error; err != nil {
		return err
	}
	if currencies == 0 {
		for _, row := range []refdomain.Currency{
			{Code: "BIF", Name: "Burundian Franc", IsDefault: true},
			{Code: "USD", Name: "US Dollar"},
		} {
			row.CreatedAt = now
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
