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

func createTestGrouper(t *testing.T, g v1.GrouperEditable, expectedStatus ...int) v1.GrouperResponse {
	if g.Name == "" {
		g.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.GrouperEditable{g}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/groupers", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.GrouperCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.GrouperResponse{}
}

func (suite *TestSuiteStandard) TestGroupersOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Grouper with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "StillNotAUUID", http.StatusBadRequest},
		{"Grouper exists", createTestGrouper(suite.T(), v1.GrouperEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/groupers", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGroupersCreate() {
	_ = createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Servicios"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/groupers", []v1.GrouperEditable{{Name: "Servicios"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

// TestGroupersCategories verifies that the categories of a grouper are
// returned with the grouper, sorted by name.
func (suite *TestSuiteStandard) TestGroupersCategories() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Hogar"})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Supermercado", GrouperID: grouper.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Luz", GrouperID: grouper.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, grouper.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GrouperResponse
	test.DecodeResponse(suite.T(), &r, &response)

	if assert.Len(suite.T(), response.Data.Categories, 2) {
		assert.Equal(suite.T(), "Luz", response.Data.Categories[0].Name)
		assert.Equal(suite.T(), "Supermercado", response.Data.Categories[1].Name)
	}
}

func (suite *TestSuiteStandard) TestGroupersUpdate() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Auto"})

	r := test.Request(suite.T(), http.MethodPatch, grouper.Data.Links.Self, map[string]any{
		"archived": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.GrouperResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Auto", updated.Data.Name)
	assert.True(suite.T(), updated.Data.Archived)
}

func (suite *TestSuiteStandard) TestGroupersDelete() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{})

	r := test.Request(suite.T(), http.MethodDelete, grouper.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, grouper.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGroupersGetFiltered() {
	_ = createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Servicios", Note: "Recurring"})
	_ = createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Viajes"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Name matches", "name=Viajes", 1},
		{"Search in note", "search=recur", 1},
		{"No match", "name=Mascotas", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/groupers?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.GrouperListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
