package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/hogar-budget/backend/internal/controllers/v1"
	"github.com/hogar-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestEstudio(t *testing.T, e v1.EstudioEditable, expectedStatus ...int) v1.EstudioResponse {
	if e.Name == "" {
		e.Name = uuid.NewString()
	}

	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.EstudioEditable{e}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/estudios", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.EstudioCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.EstudioResponse{}
}

func (suite *TestSuiteStandard) TestEstudiosCreate() {
	_ = createTestEstudio(suite.T(), v1.EstudioEditable{Name: "Fijos"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/estudios", []v1.EstudioEditable{{Name: "Fijos"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)

	// A nonexistent grouper in the member list fails the whole estudio
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/estudios", []v1.EstudioEditable{
		{Name: "Variables", GrouperIDs: []uuid.UUID{uuid.New()}},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestEstudiosResolvedGroupers verifies that the resolved grouper set is the
// union of the explicit members and the pattern matches.
func (suite *TestSuiteStandard) TestEstudiosResolvedGroupers() {
	hogar := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Hogar"})
	hogarExtra := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Hogar Extra"})
	auto := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Auto"})
	_ = createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Viajes"})

	estudio := createTestEstudio(suite.T(), v1.EstudioEditable{
		Name:           "Casa y auto",
		GrouperPattern: "Hogar*",
		GrouperIDs:     []uuid.UUID{auto.Data.ID, hogar.Data.ID},
	})

	assert.ElementsMatch(suite.T(), []uuid.UUID{auto.Data.ID, hogar.Data.ID, hogarExtra.Data.ID}, estudio.Data.ResolvedGroupers)
	assert.ElementsMatch(suite.T(), []uuid.UUID{auto.Data.ID, hogar.Data.ID}, estudio.Data.GrouperIDs)
}

// TestEstudiosUpdate verifies that updating the member list replaces it
// as a whole.
func (suite *TestSuiteStandard) TestEstudiosUpdate() {
	first := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Servicios"})
	second := createTestGrouper(suite.T(), v1.GrouperEditable{Name: "Mascotas"})

	estudio := createTestEstudio(suite.T(), v1.EstudioEditable{
		GrouperIDs: []uuid.UUID{first.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodPatch, estudio.Data.Links.Self, map[string]any{
		"grouperIds": []uuid.UUID{second.Data.ID},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.EstudioResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), []uuid.UUID{second.Data.ID}, updated.Data.GrouperIDs)
}

func (suite *TestSuiteStandard) TestEstudiosDelete() {
	grouper := createTestGrouper(suite.T(), v1.GrouperEditable{})
	estudio := createTestEstudio(suite.T(), v1.EstudioEditable{GrouperIDs: []uuid.UUID{grouper.Data.ID}})

	r := test.Request(suite.T(), http.MethodDelete, estudio.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The grouper itself survives the estudio
	r = test.Request(suite.T(), http.MethodGet, grouper.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
