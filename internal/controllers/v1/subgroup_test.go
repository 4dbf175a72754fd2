package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestSubgroup(t *testing.T, simulationID uuid.UUID, s v1.SubgroupEditable, expectedStatus ...int) v1.SubgroupResponse {
	if s.Name == "" {
		s.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	path := fmt.Sprintf("http://example.com/v1/simulations/%s/subgroups", simulationID)
	r := test.Request(t, http.MethodPost, path, s)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.SubgroupResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func (suite *TestSuiteStandard) TestSubgroupsCreate() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	first := createTestCategory(suite.T(), v1.CategoryEditable{})
	second := createTestCategory(suite.T(), v1.CategoryEditable{})

	subgroup := createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name:        "Fijos",
		CategoryIDs: []uuid.UUID{first.Data.ID},
	})
	assert.Equal(suite.T(), simulation.Data.ID, subgroup.Data.SimulationID)

	// The member list cannot be empty
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name: "Vacio",
	}, http.StatusBadRequest)

	// Names are unique per simulation regardless of case
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name:        "fijos",
		CategoryIDs: []uuid.UUID{second.Data.ID},
	}, http.StatusConflict)

	// A category can only be in one subgroup of the simulation
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{first.Data.ID},
	}, http.StatusConflict)

	// The same name and category in another simulation are fine
	other := createTestSimulation(suite.T(), v1.SimulationEditable{})
	_ = createTestSubgroup(suite.T(), other.Data.ID, v1.SubgroupEditable{
		Name:        "Fijos",
		CategoryIDs: []uuid.UUID{first.Data.ID},
	})
}

// TestSubgroupsUpdate verifies that PATCH adds categories to the
// subgroup instead of replacing its members.
func (suite *TestSuiteStandard) TestSubgroupsUpdate() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	first := createTestCategory(suite.T(), v1.CategoryEditable{})
	second := createTestCategory(suite.T(), v1.CategoryEditable{})

	subgroup := createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name:        "Servicios",
		CategoryIDs: []uuid.UUID{first.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodPatch, subgroup.Data.Links.Self, map[string]any{
		"note":        "Con el agua",
		"categoryIds": []uuid.UUID{second.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SubgroupResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Con el agua", updated.Data.Note)
	assert.ElementsMatch(suite.T(), []uuid.UUID{first.Data.ID, second.Data.ID}, updated.Data.CategoryIDs)
}

func (suite *TestSuiteStandard) TestSubgroupsRemoveCategory() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	member := createTestCategory(suite.T(), v1.CategoryEditable{})
	outsider := createTestCategory(suite.T(), v1.CategoryEditable{})

	subgroup := createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{member.Data.ID},
	})

	// Removing a category that is not a member is a 404
	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s/categories/%s", subgroup.Data.Links.Self, outsider.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("%s/categories/%s", subgroup.Data.Links.Self, member.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, subgroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.SubgroupResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Empty(suite.T(), updated.Data.CategoryIDs)
}

func (suite *TestSuiteStandard) TestSubgroupsDelete() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	subgroup := createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{category.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodDelete, subgroup.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The category is free to join another subgroup afterwards
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		CategoryIDs: []uuid.UUID{category.Data.ID},
	})
}

func (suite *TestSuiteStandard) TestSubgroupsList() {
	simulation := createTestSimulation(suite.T(), v1.SimulationEditable{})

	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name:        "Zapatos",
		CategoryIDs: []uuid.UUID{createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID},
	})
	_ = createTestSubgroup(suite.T(), simulation.Data.ID, v1.SubgroupEditable{
		Name:        "Ahorros",
		CategoryIDs: []uuid.UUID{createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID},
	})

	r := test.Request(suite.T(), http.MethodGet, simulation.Data.Links.Subgroups, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubgroupListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data, 2) {
		assert.Equal(suite.T(), "Ahorros", response.Data[0].Name)
		assert.Equal(suite.T(), "Zapatos", response.Data[1].Name)
	}
}
