package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryTipoGasto() {
	grouper := suite.createTestGrouper(models.Grouper{})

	tests := []struct {
		tipoGasto string
		err       error
	}{
		{"Fijo", nil},
		{"Semi Fijo", nil},
		{"Variable", nil},
		{"Eventual", nil},
		{"", nil},
		{"Mensual", models.ErrTipoGastoInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.tipoGasto, func(t *testing.T) {
			category := models.Category{
				Name:      uuid.NewString(),
				GrouperID: grouper.ID,
				TipoGasto: tt.tipoGasto,
			}

			err := models.DB.Create(&category).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryNameUniquePerGrouper() {
	grouper := suite.createTestGrouper(models.Grouper{})
	_ = suite.createTestCategory(models.Category{Name: "Supermercado", GrouperID: grouper.ID})

	// The same name in another grouper is fine
	_ = suite.createTestCategory(models.Category{Name: "Supermercado"})

	category := models.Category{Name: "Supermercado", GrouperID: grouper.ID, TipoGasto: "Variable"}
	err := models.DB.Create(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)
}

func (suite *TestSuiteStandard) TestCategoryGrouperMustExist() {
	category := models.Category{
		Name:      uuid.NewString(),
		GrouperID: uuid.New(),
		TipoGasto: "Fijo",
	}

	err := models.DB.Create(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
