package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func createTestBudget(t *testing.T, b v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if b.PeriodID == uuid.Nil {
		b.PeriodID = createTestPeriod(t, v1.PeriodEditable{}).Data.ID
	}
	if b.CategoryID == uuid.Nil {
		b.CategoryID = createTestCategory(t, v1.CategoryEditable{}).Data.ID
	}
	if b.PaymentMethod == "" {
		b.PaymentMethod = models.PaymentMethodEfectivo
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.BudgetResponse{}
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID:      period.Data.ID,
		CategoryID:    category.Data.ID,
		PaymentMethod: "efectivo",
		Amount:        decimal.NewFromInt(3000),
	})

	// Same period, category and payment method conflicts
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID:      period.Data.ID,
		CategoryID:    category.Data.ID,
		PaymentMethod: "efectivo",
	}, http.StatusConflict)

	// The credito budget for the same pair is a separate line
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID:      period.Data.ID,
		CategoryID:    category.Data.ID,
		PaymentMethod: "credito",
	})

	// A negative planned amount is rejected
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", []v1.BudgetEditable{
		{PeriodID: period.Data.ID, CategoryID: createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID, PaymentMethod: "efectivo", Amount: decimal.NewFromInt(-5)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{Amount: decimal.NewFromInt(1200)})

	r := test.Request(suite.T(), http.MethodPatch, budget.Data.Links.Self, map[string]any{
		"amount": "1500",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.True(suite.T(), updated.Data.Amount.Equal(decimal.NewFromInt(1500)))
}

func (suite *TestSuiteStandard) TestBudgetsGetFiltered() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{PeriodID: period.Data.ID, PaymentMethod: "efectivo"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{PeriodID: period.Data.ID, PaymentMethod: "credito"})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By period", fmt.Sprintf("period=%s", period.Data.ID), 2},
		{"By period and payment method", fmt.Sprintf("period=%s&paymentMethod=credito", period.Data.ID), 1},
		{"All", "", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/budgets?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := createTestBudget(suite.T(), v1.BudgetEditable{})

	r := test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, budget.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
