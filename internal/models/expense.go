package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")
	ErrPaymentMethodInvalid     = errors.New("the payment method must be efectivo or credito")
)

// PaymentMethod distinguishes cash and credit movements.
type PaymentMethod string

const (
	PaymentMethodEfectivo PaymentMethod = "efectivo"
	PaymentMethodCredito  PaymentMethod = "credito"
)

// Valid reports whether the payment method is known.
func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodEfectivo || p == PaymentMethodCredito
}

// Expense is a single recorded expense within a period.
type Expense struct {
	DefaultModel
	Period        Period `json:"-"`
	PeriodID      uuid.UUID
	Category      Category `json:"-"`
	CategoryID    uuid.UUID
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentMethod PaymentMethod
	Date          time.Time
	Note          string
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Expense)
	return e.checkIntegrity(tx, *toSave)
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Expense)

	if tx.Statement.Changed("PeriodID") || tx.Statement.Changed("CategoryID") {
		err := e.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the period and category exist.
func (e *Expense) checkIntegrity(tx *gorm.DB, toSave Expense) error {
	err := tx.First(&Period{}, toSave.PeriodID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)

	if !e.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(e.Amount) {
		return ErrExpenseAmountNotPositive
	}

	return nil
}

// Returns all expenses on this instance for export
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Unscoped().Where(&Expense{}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&expenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
