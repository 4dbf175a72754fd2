package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/hogar-budget/backend/internal/types"
	"gorm.io/gorm"
)

var ErrPeriodNameNotUnique = errors.New("the period name is already in use")

// Period is a named budgeting month.
type Period struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Month    types.Month
	Note     string
	Archived bool
}

func (p *Period) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	return nil
}

// Returns all periods on this instance for export
func (Period) Export() (json.RawMessage, error) {
	var periods []Period
	err := DB.Unscoped().Where(&Period{}).Find(&periods).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&periods)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
