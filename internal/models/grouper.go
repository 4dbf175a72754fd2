package models

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrGrouperNameNotUnique = errors.New("the grouper name is already in use")

// Grouper is a top-level bucket of categories for dashboard aggregation.
// It is unrelated to simulation subgroups.
type Grouper struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	Archived bool
}

func (g *Grouper) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

// Categories returns the categories of the grouper.
func (g Grouper) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category

	err := db.
		Where(&Category{GrouperID: g.ID}).
		Order("name ASC").
		Find(&categories).
		Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Returns all groupers on this instance for export
func (Grouper) Export() (json.RawMessage, error) {
	var groupers []Grouper
	err := DB.Unscoped().Where(&Grouper{}).Find(&groupers).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&groupers)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
