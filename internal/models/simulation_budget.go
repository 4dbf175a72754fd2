package models

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSimulationBudgetNotUnique      = errors.New("there is already a simulation budget for this category")
	ErrSimulationBudgetAmountNegative = errors.New("simulation budget amounts must not be negative")
	ErrAhorroExceedsAmount            = errors.New("the ahorro portion must not exceed the corresponding amount")
)

// SimulationBudget is the per-category line of a simulation: planned
// cash and credit amounts, plus the portion of each that is set aside
// as savings rather than spent.
type SimulationBudget struct {
	DefaultModel
	Simulation      Simulation      `json:"-"`
	SimulationID    uuid.UUID       `gorm:"uniqueIndex:simulation_budget_category"`
	Category        Category        `json:"-"`
	CategoryID      uuid.UUID       `gorm:"uniqueIndex:simulation_budget_category"`
	Efectivo        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Credito         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AhorroEfectivo  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AhorroCredito   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	NeedsAdjustment bool
}

func (b *SimulationBudget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*SimulationBudget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *SimulationBudget) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(SimulationBudget)

	if tx.Statement.Changed("SimulationID") || tx.Statement.Changed("CategoryID") {
		err := b.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the simulation and category exist.
func (b *SimulationBudget) checkIntegrity(tx *gorm.DB, toSave SimulationBudget) error {
	err := tx.First(&Simulation{}, toSave.SimulationID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (b *SimulationBudget) AfterSave(_ *gorm.DB) error {
	for _, amount := range []decimal.Decimal{b.Efectivo, b.Credito, b.AhorroEfectivo, b.AhorroCredito} {
		if amount.IsNegative() {
			return ErrSimulationBudgetAmountNegative
		}
	}

	if b.AhorroEfectivo.GreaterThan(b.Efectivo) || b.AhorroCredito.GreaterThan(b.Credito) {
		return ErrAhorroExceedsAmount
	}

	return nil
}

// Returns all simulation budgets on this instance for export
func (SimulationBudget) Export() (json.RawMessage, error) {
	var budgets []SimulationBudget
	err := DB.Unscoped().Where(&SimulationBudget{}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&budgets)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
