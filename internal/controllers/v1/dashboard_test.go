package v1_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/internal/types"
	"github.com/hogar-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDashboardPeriodRequired() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?period=%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDashboardActuals() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Hogar"})
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Supermercado", GrouperID: grouper.Data.ID})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(180),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "credito", Amount: decimal.NewFromInt(100),
	})

	// A budget must not leak into the actuals view
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(9999),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?period=%s", period.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.False(suite.T(), response.Data.Projection)
	assert.True(suite.T(), response.Data.Efectivo.Equal(decimal.NewFromInt(180)))
	assert.True(suite.T(), response.Data.Credito.Equal(decimal.NewFromInt(100)))

	var hogar *v1.DashboardGrouper
	for i, g := range response.Data.Groupers {
		if g.ID == grouper.Data.ID {
			hogar = &response.Data.Groupers[i]
		}
	}

	if assert.NotNil(suite.T(), hogar) {
		assert.True(suite.T(), hogar.Efectivo.Equal(decimal.NewFromInt(180)))
		if assert.Len(suite.T(), hogar.Categories, 1) {
			assert.Equal(suite.T(), "Supermercado", hogar.Categories[0].Name)
			assert.True(suite.T(), hogar.Categories[0].Credito.Equal(decimal.NewFromInt(100)))
		}
	}
}

// TestDashboardProjection verifies that the projection view sums the
// budgets instead of the expenses.
func (suite *TestSuiteStandard) TestDashboardProjection() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(3000),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(120),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?period=%s&projection=true", period.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Projection)
	assert.True(suite.T(), response.Data.Efectivo.Equal(decimal.NewFromInt(3000)))
}

// TestDashboardEstudio verifies that an estudio narrows the dashboard
// to its resolved groupers.
func (suite *TestSuiteStandard) TestDashboardEstudio() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	hogar := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Hogar"})
	auto := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Auto"})

	inside := createTestCategory(suite.T(), v1.CategoryEditable{GrouperID: hogar.Data.ID})
	outside := createTestCategory(suite.T(), v1.CategoryEditable{GrouperID: auto.Data.ID})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: inside.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(100),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: outside.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(400),
	})

	estudio := createTestEstudio(suite.T(), v1.EstudioEditable{GrouperPattern: "Hogar*"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard?period=%s&estudio=%s", period.Data.ID, estudio.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Efectivo.Equal(decimal.NewFromInt(100)))
	if assert.Len(suite.T(), response.Data.Groupers, 1) {
		assert.Equal(suite.T(), hogar.Data.ID, response.Data.Groupers[0].ID)
	}
}

func (suite *TestSuiteStandard) TestWeeklyDashboard() {
	// August 2026 starts on a Saturday, so the 3rd is in the second
	// Monday-based week
	period := createTestPeriod(suite.T(), v1.PeriodEditable{Month: types.NewMonth(2026, time.August)})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(50),
		Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	_ = createTestExpense(suite.T(), v1.ExpenseEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "credito", Amount: decimal.NewFromInt(75),
		Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/dashboard/weekly?period=%s", period.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WeeklyDashboardResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, period.Data.Month.Weeks()) {
		assert.Equal(suite.T(), 1, response.Data[0].Week)
		assert.True(suite.T(), response.Data[0].Efectivo.Equal(decimal.NewFromInt(50)))
		assert.True(suite.T(), response.Data[1].Credito.Equal(decimal.NewFromInt(75)))
	}
}
