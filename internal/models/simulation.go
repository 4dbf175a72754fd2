package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrSimulationNameNotUnique = errors.New("the simulation name is already in use")

// Simulation is an independent what-if budget scenario. It can
// optionally be linked to a period to seed its budgets, but after
// creation it evolves on its own.
type Simulation struct {
	DefaultModel
	Name        string  `gorm:"uniqueIndex"`
	Period      *Period `json:"-"`
	PeriodID    *uuid.UUID
	TotalIncome decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note        string
	Archived    bool
}

func (s *Simulation) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Simulation)
	return s.checkIntegrity(tx, *toSave)
}

func (s *Simulation) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Simulation)

	if tx.Statement.Changed("PeriodID") {
		err := s.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the period referenced exists. A
// simulation without a period is valid.
func (s *Simulation) checkIntegrity(tx *gorm.DB, toSave Simulation) error {
	if toSave.PeriodID == nil {
		return nil
	}

	return tx.First(&Period{}, *toSave.PeriodID).Error
}

func (s *Simulation) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	return nil
}

// Subgroups returns the subgroups defined for this simulation, ordered
// by name.
func (s Simulation) Subgroups(db *gorm.DB) ([]Subgroup, error) {
	var subgroups []Subgroup
	err := db.Where(&Subgroup{SimulationID: s.ID}).Order("name ASC").Find(&subgroups).Error
	if err != nil {
		return nil, err
	}

	return subgroups, nil
}

// Returns all simulations on this instance for export
func (Simulation) Export() (json.RawMessage, error) {
	var simulations []Simulation
	err := DB.Unscoped().Where(&Simulation{}).Find(&simulations).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&simulations)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
