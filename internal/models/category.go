package models

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNameNotUnique = errors.New("the category name is already in use for this grouper")
	ErrTipoGastoInvalid      = errors.New("tipoGasto must be one of Fijo, Semi Fijo, Variable or Eventual")
)

// tipoGastos are the valid expense classifications. The empty string
// means unclassified.
var tipoGastos = []string{"", "Fijo", "Semi Fijo", "Variable", "Eventual"}

// Category is an expense category. Its grouper scopes it for dashboard
// aggregation; within simulations, categories can additionally be
// organized into subgroups.
type Category struct {
	DefaultModel
	Name      string    `gorm:"uniqueIndex:category_name_grouper"`
	Grouper   Grouper   `json:"-"`
	GrouperID uuid.UUID `gorm:"uniqueIndex:category_name_grouper"`
	TipoGasto string
	Note      string
	Archived  bool
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Category)

	if tx.Statement.Changed("GrouperID") {
		err := c.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that the grouper referenced exists.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.First(&Grouper{}, toSave.GrouperID).Error
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.TipoGasto = strings.TrimSpace(c.TipoGasto)

	for _, valid := range tipoGastos {
		if c.TipoGasto == valid {
			return nil
		}
	}

	return ErrTipoGastoInvalid
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
