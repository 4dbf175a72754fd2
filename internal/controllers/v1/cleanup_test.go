package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{PeriodID: period.Data.ID, CategoryID: category.Data.ID})
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{category.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	for _, path := range []string{
		"http://example.com/v1/periods",
		"http://example.com/v1/groupers",
		"http://example.com/v1/categories",
		"http://example.com/v1/expenses",
		"http://example.com/v1/simulations",
	} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}
			test.DecodeResponse(t, &r, &response)
			assert.Empty(t, response.Data)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupNotConfirmed() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})

	tests := []struct {
		name  string
		query string
	}{
		{"No confirmation", ""},
		{"Wrong confirmation", "?confirm=yes"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, "http://example.com/v1"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}

	// Nothing was deleted
	r := test.Request(suite.T(), http.MethodGet, period.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
