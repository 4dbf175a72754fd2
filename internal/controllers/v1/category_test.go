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

func createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}
	if c.GrouperID == uuid.Nil {
		c.GrouperID = createTestGrouper(t, v1.GrouperEditable{}).Data.ID
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CategoryEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.CategoryResponse{}
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{})

	tests := []struct {
		name     string
		editable v1.CategoryEditable
		status   int
	}{
		{"Valid", v1.CategoryEditable{Name: "Luz", GrouperID: grouper.Data.ID, TipoGasto: "Fijo"}, http.StatusCreated},
		{"Duplicate name in grouper", v1.CategoryEditable{Name: "Luz", GrouperID: grouper.Data.ID}, http.StatusConflict},
		{"Nonexistent grouper", v1.CategoryEditable{Name: "Agua", GrouperID: uuid.New()}, http.StatusNotFound},
		{"Invalid tipo de gasto", v1.CategoryEditable{Name: "Gas", GrouperID: grouper.Data.ID, TipoGasto: "Mensual"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{tt.editable})
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestCategoriesSameNameOtherGrouper verifies that the name uniqueness
// check is scoped to the grouper.
func (suite *TestSuiteStandard) TestCategoriesSameNameOtherGrouper() {
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Seguro"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Seguro"})
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{TipoGasto: "Variable"})

	r := test.Request(suite.T(), http.MethodPatch, category.Data.Links.Self, map[string]any{
		"tipoGasto": "Semi Fijo",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Semi Fijo", updated.Data.TipoGasto)
}

func (suite *TestSuiteStandard) TestCategoriesDelete() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{GrouperID: grouper.Data.ID, TipoGasto: "Fijo"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{GrouperID: grouper.Data.ID, TipoGasto: "Variable"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{TipoGasto: "Fijo"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"By grouper", fmt.Sprintf("grouper=%s", grouper.Data.ID), 2},
		{"By tipo de gasto", "tipoGasto=Fijo", 2},
		{"By grouper and tipo de gasto", fmt.Sprintf("grouper=%s&tipoGasto=Variable", grouper.Data.ID), 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
