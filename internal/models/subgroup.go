package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSubgroupNameNotUnique  = errors.New("the subgroup name is already in use for this simulation")
	ErrSubgroupNameEmpty      = errors.New("the subgroup name must not be empty")
	ErrCategoryAlreadyGrouped = errors.New("the category already belongs to a subgroup in this simulation")
)

// Subgroup is a named bundle of categories within a single simulation.
// A category belongs to at most one subgroup per simulation.
type Subgroup struct {
	DefaultModel
	Simulation   Simulation `json:"-"`
	SimulationID uuid.UUID  `gorm:"uniqueIndex:subgroup_simulation_name"`
	Name         string     `gorm:"uniqueIndex:subgroup_simulation_name"`
	Note         string
}

func (s *Subgroup) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Subgroup)
	return s.checkIntegrity(tx, *toSave)
}

func (s *Subgroup) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Subgroup)

	if tx.Statement.Changed("SimulationID") {
		err := s.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the simulation referenced exists.
func (s *Subgroup) checkIntegrity(tx *gorm.DB, toSave Subgroup) error {
	return tx.First(&Simulation{}, toSave.SimulationID).Error
}

// BeforeSave trims the name and rejects duplicates regardless of case.
// The unique index only catches exact matches, so "Servicios" and
// "servicios" have to be caught here.
func (s *Subgroup) BeforeSave(tx *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	if s.Name == "" {
		return ErrSubgroupNameEmpty
	}

	var count int64
	err := tx.Model(&Subgroup{}).
		Where("simulation_id = ? AND id != ? AND LOWER(name) = LOWER(?)", s.SimulationID, s.ID, s.Name).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrSubgroupNameNotUnique
	}

	return nil
}

// Members returns the membership rows of this subgroup in stored
// position order.
func (s Subgroup) Members(db *gorm.DB) ([]SubgroupMembership, error) {
	var members []SubgroupMembership
	err := db.Where(&SubgroupMembership{SubgroupID: s.ID}).Order("position ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

// SubgroupMembership assigns a category to a subgroup. The simulation
// is stored redundantly so that the uniqueness of a category per
// simulation can be enforced by the database.
type SubgroupMembership struct {
	Timestamps
	Simulation   Simulation `json:"-"`
	SimulationID uuid.UUID  `gorm:"uniqueIndex:membership_simulation_category"`
	Subgroup     Subgroup   `json:"-"`
	SubgroupID   uuid.UUID  `gorm:"primaryKey"`
	Category     Category   `json:"-"`
	CategoryID   uuid.UUID  `gorm:"primaryKey;uniqueIndex:membership_simulation_category"`
	Position     int
}

func (m *SubgroupMembership) BeforeCreate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(*SubgroupMembership)
	return m.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies that the subgroup and the category exist and
// that the subgroup belongs to the simulation recorded on the row.
func (m *SubgroupMembership) checkIntegrity(tx *gorm.DB, toSave SubgroupMembership) error {
	var subgroup Subgroup
	err := tx.First(&subgroup, toSave.SubgroupID).Error
	if err != nil {
		return err
	}

	if subgroup.SimulationID != toSave.SimulationID {
		return errors.New("the subgroup does not belong to this simulation")
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

// Returns all subgroups on this instance for export
func (Subgroup) Export() (json.RawMessage, error) {
	var subgroups []Subgroup
	err := DB.Unscoped().Where(&Subgroup{}).Find(&subgroups).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&subgroups)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Returns all subgroup memberships on this instance for export
func (SubgroupMembership) Export() (json.RawMessage, error) {
	var members []SubgroupMembership
	err := DB.Unscoped().Where(&SubgroupMembership{}).Find(&members).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&members)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
