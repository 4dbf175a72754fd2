package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestTemplate(t *testing.T, tmpl v1.TemplateEditable, expectedStatus ...int) v1.TemplateResponse {
	if tmpl.Name == "" {
		tmpl.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.TemplateEditable{tmpl}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/templates", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.TemplateCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.TemplateResponse{}
}

func (suite *TestSuiteStandard) TestTemplatesCreate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	template := createTestTemplate(suite.T(), v1.TemplateEditable{
		Name: "Mes austero",
		Entries: []v1.TemplateEntryEditable{
			{CategoryID: category.Data.ID, Efectivo: decimal.NewFromInt(180)},
		},
	})
	assert.Len(suite.T(), template.Data.Entries, 1)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates", []v1.TemplateEditable{{Name: "Mes austero"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// An entry for a nonexistent category fails the whole template
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/templates", []v1.TemplateEditable{
		{Name: "Roto", Entries: []v1.TemplateEntryEditable{{CategoryID: uuid.New()}}},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTemplatesUpdate verifies that the entries sent on PATCH replace
// the stored ones as a whole.
func (suite *TestSuiteStandard) TestTemplatesUpdate() {
	first := createTestCategory(suite.T(), v1.CategoryEditable{})
	second := createTestCategory(suite.T(), v1.CategoryEditable{})

	template := createTestTemplate(suite.T(), v1.TemplateEditable{
		Entries: []v1.TemplateEntryEditable{
			{CategoryID: first.Data.ID, Efectivo: decimal.NewFromInt(100)},
		},
	})

	r := test.Request(suite.T(), http.MethodPatch, template.Data.Links.Self, map[string]any{
		"entries": []v1.TemplateEntryEditable{
			{CategoryID: second.Data.ID, Credito: decimal.NewFromInt(50)},
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.TemplateResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	if assert.Len(suite.T(), updated.Data.Entries, 1) {
		assert.Equal(suite.T(), second.Data.ID, updated.Data.Entries[0].CategoryID)
	}
}

func (suite *TestSuiteStandard) TestTemplatesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	template := createTestTemplate(suite.T(), v1.TemplateEditable{
		Entries: []v1.TemplateEntryEditable{{CategoryID: category.Data.ID}},
	})

	r := test.Request(suite.T(), http.MethodDelete, template.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, template.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestTemplatesApply verifies that applying a template skips existing
// lines unless overwrite is requested.
func (suite *TestSuiteStandard) TestTemplatesApply() {
	existing := createTestCategory(suite.T(), v1.CategoryEditable{})
	fresh := createTestCategory(suite.T(), v1.CategoryEditable{})

	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})

	r := test.Request(suite.T(), http.MethodPut, simulation.Data.Links.Budgets, map[string]v1.SimulationBudgetEditable{
		existing.Data.ID.String(): {Efectivo: decimal.NewFromInt(999)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	template := createTestTemplate(suite.T(), v1.TemplateEditable{
		Entries: []v1.TemplateEntryEditable{
			{CategoryID: existing.Data.ID, Efectivo: decimal.NewFromInt(100)},
			{CategoryID: fresh.Data.ID, Efectivo: decimal.NewFromInt(200)},
		},
	})

	applyPath := fmt.Sprintf("http://example.com/v1/simulations/%s/apply-template", simulation.Data.ID)

	r = test.Request(suite.T(), http.MethodPost, applyPath, v1.ApplyTemplateEditable{TemplateID: template.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budgets v1.SimulationBudgetsResponse
	test.DecodeResponse(suite.T(), &r, &budgets)

	// The existing line is untouched, the missing one is created
	assert.True(suite.T(), budgets.Data.Entries[existing.Data.ID.String()].Efectivo.Equal(decimal.NewFromInt(999)))
	assert.True(suite.T(), budgets.Data.Entries[fresh.Data.ID.String()].Efectivo.Equal(decimal.NewFromInt(200)))

	r = test.Request(suite.T(), http.MethodPost, applyPath, v1.ApplyTemplateEditable{TemplateID: template.Data.ID, Overwrite: true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &budgets)
	assert.True(suite.T(), budgets.Data.Entries[existing.Data.ID.String()].Efectivo.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestTemplatesApplyNonexistent() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})

	applyPath := fmt.Sprintf("http://example.com/v1/simulations/%s/apply-template", simulation.Data.ID)
	r := test.Request(suite.T(), http.MethodPost, applyPath, v1.ApplyTemplateEditable{TemplateID: uuid.New()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
