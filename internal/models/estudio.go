package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

var ErrEstudioNameNotUnique = errors.New("the estudio name is already in use")

// Estudio is a named filter selecting a subset of groupers for
// dashboard display. Groupers are selected either explicitly through
// EstudioGrouper rows or by a glob pattern on the grouper name.
type Estudio struct {
	DefaultModel
	Name           string `gorm:"uniqueIndex"`
	GrouperPattern string
	Note           string
}

// EstudioGrouper is an explicit estudio membership.
type EstudioGrouper struct {
	Timestamps
	EstudioID uuid.UUID `gorm:"primaryKey"`
	GrouperID uuid.UUID `gorm:"primaryKey"`
}

func (e *Estudio) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Note = strings.TrimSpace(e.Note)

	return nil
}

// Groupers returns the groupers in scope for the estudio: the union of
// the explicit members and the groupers whose name matches the pattern.
func (e Estudio) Groupers(db *gorm.DB) ([]Grouper, error) {
	var memberships []EstudioGrouper
	err := db.Where(&EstudioGrouper{EstudioID: e.ID}).Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	explicit := make(map[uuid.UUID]bool, len(memberships))
	for _, membership := range memberships {
		explicit[membership.GrouperID] = true
	}

	var all []Grouper
	err = db.Order("name ASC").Find(&all).Error
	if err != nil {
		return nil, err
	}

	groupers := make([]Grouper, 0, len(all))
	for _, grouper := range all {
		if explicit[grouper.ID] || (e.GrouperPattern != "" && glob.Glob(e.GrouperPattern, grouper.Name)) {
			groupers = append(groupers, grouper)
		}
	}

	return groupers, nil
}

// Returns all estudios on this instance for export
func (Estudio) Export() (json.RawMessage, error) {
	var estudios []Estudio
	err := DB.Unscoped().Where(&Estudio{}).Find(&estudios).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&estudios)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Returns all estudio memberships on this instance for export
func (EstudioGrouper) Export() (json.RawMessage, error) {
	var memberships []EstudioGrouper
	err := DB.Unscoped().Where(&EstudioGrouper{}).Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&memberships)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
