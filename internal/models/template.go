package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTemplateNameNotUnique  = errors.New("the template name is already in use")
	ErrTemplateEntryNotUnique = errors.New("there is already a template entry for this category")
)

// Template is a reusable set of budget amounts that can be applied to
// a simulation.
type Template struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Note string
}

func (t *Template) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

// Entries returns the template entries for this template.
func (t Template) Entries(db *gorm.DB) ([]TemplateEntry, error) {
	var entries []TemplateEntry
	err := db.Where(&TemplateEntry{TemplateID: t.ID}).Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// TemplateEntry is the per-category line of a template. It mirrors the
// amounts of a simulation budget.
type TemplateEntry struct {
	DefaultModel
	Template       Template        `json:"-"`
	TemplateID     uuid.UUID       `gorm:"uniqueIndex:template_entry_category"`
	Category       Category        `json:"-"`
	CategoryID     uuid.UUID       `gorm:"uniqueIndex:template_entry_category"`
	Efectivo       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Credito        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AhorroEfectivo decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AhorroCredito  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (e *TemplateEntry) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*TemplateEntry)
	return e.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies that the template and category exist.
func (e *TemplateEntry) checkIntegrity(tx *gorm.DB, toSave TemplateEntry) error {
	err := tx.First(&Template{}, toSave.TemplateID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (e *TemplateEntry) AfterSave(_ *gorm.DB) error {
	for _, amount := range []decimal.Decimal{e.Efectivo, e.Credito, e.AhorroEfectivo, e.AhorroCredito} {
		if amount.IsNegative() {
			return ErrSimulationBudgetAmountNegative
		}
	}

	return nil
}

// Returns all templates on this instance for export
func (Template) Export() (json.RawMessage, error) {
	var templates []Template
	err := DB.Unscoped().Where(&Template{}).Find(&templates).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&templates)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Returns all template entries on this instance for export
func (TemplateEntry) Export() (json.RawMessage, error) {
	var entries []TemplateEntry
	err := DB.Unscoped().Where(&TemplateEntry{}).Find(&entries).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&entries)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
