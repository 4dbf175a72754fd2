package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/internal/types"
	"github.com/hogar-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestPeriod(t *testing.T, p v1.PeriodEditable, expectedStatus ...int) v1.PeriodResponse {
	if p.Name == "" {
		p.Name = uuid.NewString()
	}
	if p.Month.IsZero() {
		p.Month = types.NewMonth(2026, time.August)
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.PeriodEditable{p}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/periods", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.PeriodCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.PeriodResponse{}
}

// TestPeriodsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestPeriodsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Periods endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Period with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Period exists", createTestPeriod(suite.T(), v1.PeriodEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/periods", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestPeriodsCreate() {
	_ = createTestPeriod(suite.T(), v1.PeriodEditable{Name: "Agosto 2026"})

	// A period with a name that is already in use cannot be created
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/periods", []v1.PeriodEditable{{Name: "Agosto 2026"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestPeriodsGetSingle() {
	p := createTestPeriod(suite.T(), v1.PeriodEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Period", p.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Period with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"DELETE Existing Period", p.Data.ID.String(), http.StatusNoContent, http.MethodDelete},
		{"DELETE No Period with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/periods/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestPeriodsUpdate() {
	p := createTestPeriod(suite.T(), v1.PeriodEditable{Name: "Agosto 2026"})

	r := test.Request(suite.T(), http.MethodPatch, p.Data.Links.Self, map[string]any{
		"name": "Septiembre 2026",
		"note": "Renamed",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.PeriodResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Septiembre 2026", updated.Data.Name)
	assert.Equal(suite.T(), "Renamed", updated.Data.Note)
}

func (suite *TestSuiteStandard) TestPeriodsGetFiltered() {
	_ = createTestPeriod(suite.T(), v1.PeriodEditable{Month: types.NewMonth(2026, time.March)})
	_ = createTestPeriod(suite.T(), v1.PeriodEditable{Month: types.NewMonth(2026, time.March), Archived: true})
	_ = createTestPeriod(suite.T(), v1.PeriodEditable{Month: types.NewMonth(2026, time.April)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Month matches two", "month=2026-03", 2},
		{"Month matches one", "month=2026-04", 1},
		{"Month matches none", "month=2027-01", 0},
		{"Archived", "archived=true", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/periods?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.PeriodListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
