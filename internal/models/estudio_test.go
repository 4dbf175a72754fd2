package models_test

import (
	"github.com/hogar-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestEstudioNameNotUnique() {
	_ = suite.createTestEstudio(models.Estudio{Name: "Gastos fijos"})

	estudio := models.Estudio{Name: "Gastos fijos"}
	err := models.DB.Create(&estudio).Error

	assert.ErrorIs(suite.T(), err, models.ErrEstudioNameNotUnique)
}

// TestEstudioGroupers verifies that the resolved groupers are the union
// of the explicit members and the pattern matches, without duplicates.
func (suite *TestSuiteStandard) TestEstudioGroupers() {
	hogar := suite.createTestGrouper(models.Grouper{Name: "Hogar"})
	_ = suite.createTestGrouper(models.Grouper{Name: "Hogar Extra"})
	auto := suite.createTestGrouper(models.Grouper{Name: "Auto"})
	_ = suite.createTestGrouper(models.Grouper{Name: "Viajes"})

	estudio := suite.createTestEstudio(models.Estudio{GrouperPattern: "Hogar*"})

	// Auto is an explicit member, Hogar matches both the pattern and
	// an explicit membership
	require.Nil(suite.T(), models.DB.Create(&models.EstudioGrouper{EstudioID: estudio.ID, GrouperID: auto.ID}).Error)
	require.Nil(suite.T(), models.DB.Create(&models.EstudioGrouper{EstudioID: estudio.ID, GrouperID: hogar.ID}).Error)

	groupers, err := estudio.Groupers(models.DB)
	require.Nil(suite.T(), err)

	names := make([]string, 0, len(groupers))
	for _, grouper := range groupers {
		names = append(names, grouper.Name)
	}

	assert.Equal(suite.T(), []string{"Auto", "Hogar", "Hogar Extra"}, names)
}

func (suite *TestSuiteStandard) TestEstudioNoPattern() {
	_ = suite.createTestGrouper(models.Grouper{Name: "Hogar"})
	estudio := suite.createTestEstudio(models.Estudio{})

	groupers, err := estudio.Groupers(models.DB)
	require.Nil(suite.T(), err)
	assert.Empty(suite.T(), groupers)
}
