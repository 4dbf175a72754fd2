package models_test

import (
	"github.com/hogar-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTemplateNameNotUnique() {
	_ = suite.createTestTemplate(models.Template{Name: "Mes austero"})

	template := models.Template{Name: "Mes austero"}
	err := models.DB.Create(&template).Error

	assert.ErrorIs(suite.T(), err, models.ErrTemplateNameNotUnique)
}

func (suite *TestSuiteStandard) TestTemplateEntryNotUnique() {
	entry := suite.createTestTemplateEntry(models.TemplateEntry{})

	duplicate := models.TemplateEntry{
		TemplateID: entry.TemplateID,
		CategoryID: entry.CategoryID,
	}

	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrTemplateEntryNotUnique)
}

func (suite *TestSuiteStandard) TestTemplateEntries() {
	template := suite.createTestTemplate(models.Template{})

	_ = suite.createTestTemplateEntry(models.TemplateEntry{TemplateID: template.ID})
	_ = suite.createTestTemplateEntry(models.TemplateEntry{TemplateID: template.ID})

	entries, err := template.Entries(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), entries, 2)
}
