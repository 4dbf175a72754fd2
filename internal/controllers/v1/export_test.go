package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExport() {
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "0.0.0", response.Version)
	assert.Len(suite.T(), response.Data, len(models.Registry))
	assert.WithinDuration(suite.T(), time.Now(), response.CreationTime, time.Minute)

	assert.Contains(suite.T(), response.Data, "Expense")
	assert.NotEqual(suite.T(), "null", string(response.Data["Expense"]))
}

func (suite *TestSuiteStandard) TestExportOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "GET", r.Header().Get("allow"))
}
