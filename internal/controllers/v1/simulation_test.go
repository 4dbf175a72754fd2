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

func createTestSimulation(t *testing.T, s v1.SimulationEditable, expectedStatus ...int) v1.SimulationResponse {
	if s.Name == "" {
		s.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.SimulationEditable{s}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/simulations", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.SimulationCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.SimulationResponse{}
}

func (suite *TestSuiteStandard) TestSimulationsCreate() {
	_ = createTestSimulation(suite.T(), v1.SimulationEditable{Name: "Mudanza"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/simulations", []v1.SimulationEditable{{Name: "Mudanza"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// A nonexistent period cannot seed a simulation
	id := uuid.New()
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/simulations", []v1.SimulationEditable{{Name: "Sin periodo", PeriodID: &id}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestSimulationsSeeding verifies that referencing a period on create
// copies its budgets into the simulation, merged per category.
func (suite *TestSuiteStandard) TestSimulationsSeeding() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "efectivo", Amount: decimal.NewFromInt(1200),
	})
	_ = createTestBudget(suite.T(), v1.BudgetEditable{
		PeriodID: period.Data.ID, CategoryID: category.Data.ID,
		PaymentMethod: "credito", Amount: decimal.NewFromInt(800),
	})

	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{PeriodID: &period.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, simulation.Data.Links.Budgets, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var budgets v1.SimulationBudgetsResponse
	test.DecodeResponse(suite.T(), &r, &budgets)

	if assert.Len(suite.T(), budgets.Data.Entries, 1) {
		entry := budgets.Data.Entries[category.Data.ID.String()]
		assert.True(suite.T(), entry.Efectivo.Equal(decimal.NewFromInt(1200)))
		assert.True(suite.T(), entry.Credito.Equal(decimal.NewFromInt(800)))
	}
}

func (suite *TestSuiteStandard) TestSimulationsUpdate() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})

	r := test.Request(suite.T(), http.MethodPatch, simulation.Data.Links.Self, map[string]any{
		"totalIncome": "85000",
		"archived":    true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SimulationResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.True(suite.T(), updated.Data.TotalIncome.Equal(decimal.NewFromInt(85000)))
	assert.True(suite.T(), updated.Data.Archived)
}

// TestSimulationsDelete verifies that deleting a simulation removes its
// budgets and subgroups.
func (suite *TestSuiteStandard) TestSimulationsDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})

	r := test.Request(suite.T(), http.MethodPut, simulation.Data.Links.Budgets, map[string]v1.SimulationBudgetEditable{
		category.Data.ID.String(): {Efectivo: decimal.NewFromInt(100)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{category.Data.ID},
	})

	r = test.Request(suite.T(), http.MethodDelete, simulation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, simulation.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSimulationsGetFiltered() {
	period := createTestPeriod(suite.T(), v1.PeriodEditable{})

	_ = createTestSimulation(suite.T(), v1.SimulationEditable{Name: "Marzo ajustado", PeriodID: &period.Data.ID})
	_ = createTestSimulation(suite.T(), v1.SimulationEditable{Name: "Sin auto", Archived: true})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By name", "name=Sin auto", 1},
		{"Archived", "archived=true", 1},
		{"Search", "search=marzo", 1},
		{"All", "", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/simulations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SimulationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestSimulationBudgetsPut() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	// First write creates the line
	r := test.Request(suite.T(), http.MethodPut, simulation.Data.Links.Budgets, map[string]v1.SimulationBudgetEditable{
		category.Data.ID.String(): {Efectivo: decimal.NewFromInt(500), AhorroEfectivo: decimal.NewFromInt(100)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// Second write updates it, zero values included
	r = test.Request(suite.T(), http.MethodPut, simulation.Data.Links.Budgets, map[string]v1.SimulationBudgetEditable{
		category.Data.ID.String(): {Efectivo: decimal.NewFromInt(300), NeedsAdjustment: true},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SimulationBudgetsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	entry := response.Data.Entries[category.Data.ID.String()]
	assert.True(suite.T(), entry.Efectivo.Equal(decimal.NewFromInt(300)))
	assert.True(suite.T(), entry.AhorroEfectivo.IsZero())
	assert.True(suite.T(), entry.NeedsAdjustment)

	// Savings beyond the planned amount are rejected
	r = test.Request(suite.T(), http.MethodPut, simulation.Data.Links.Budgets, map[string]v1.SimulationBudgetEditable{
		category.Data.ID.String(): {Efectivo: decimal.NewFromInt(100), AhorroEfectivo: decimal.NewFromInt(200)},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
