package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBudgetNotUnique      = errors.New("there is already a budget for this period, category and payment method")
	ErrBudgetAmountNegative = errors.New("budget amounts must not be negative")
)

// Budget is the planned amount for a category in a period, per payment
// method.
type Budget struct {
	DefaultModel
	Period        Period          `json:"-"`
	PeriodID      uuid.UUID       `gorm:"uniqueIndex:budget_period_category_method"`
	Category      Category        `json:"-"`
	CategoryID    uuid.UUID       `gorm:"uniqueIndex:budget_period_category_method"`
	PaymentMethod PaymentMethod   `gorm:"uniqueIndex:budget_period_category_method"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Budget)

	if tx.Statement.Changed("PeriodID") || tx.Statement.Changed("CategoryID") {
		err := b.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the period and category exist.
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	err := tx.First(&Period{}, toSave.PeriodID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if !b.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	return nil
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if b.Amount.IsNegative() {
		return ErrBudgetAmountNegative
	}

	return nil
}

// Returns all budgets on this instance for export
func (Budget) Export() (json.RawMessage, error) {
	var budgets []Budget
	err := DB.Unscoped().Where(&Budget{}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
