package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	hogar_uuid "github.com/hogar-budget/backend/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SimulationEditable represents all user configurable parameters
type SimulationEditable struct {
	Name        string          `json:"name" example:"Mudanza 2026" default:""`                  // Name of the simulation
	PeriodID    *uuid.UUID      `json:"periodId" example:"d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"` // Optional period the simulation was seeded from
	TotalIncome decimal.Decimal `json:"totalIncome" example:"85000" minimum:"0"`                 // Income the simulation budgets against
	Note        string          `json:"note" example:"What if we move in March" default:""`      // Notes about the simulation
	Archived    bool            `json:"archived" example:"true" default:"false"`                 // Is the simulation archived?
}

func (editable SimulationEditable) model() models.Simulation {
	return models.Simulation{
		Name:        editable.Name,
		PeriodID:    editable.PeriodID,
		TotalIncome: editable.TotalIncome,
		Note:        editable.Note,
		Archived:    editable.Archived,
	}
}

type SimulationLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/simulations/3b1ea324-d438-4419-882a-2fc91d71772f"`                          // The simulation itself
	Budgets        string `json:"budgets" example:"https://example.com/api/v1/simulations/3b1ea324-d438-4419-882a-2fc91d71772f/budgets"`               // The budgets of the simulation
	Subgroups      string `json:"subgroups" example:"https://example.com/api/v1/simulations/3b1ea324-d438-4419-882a-2fc91d71772f/subgroups"`           // The subgroups of the simulation
	Preferences    string `json:"preferences" example:"https://example.com/api/v1/simulations/3b1ea324-d438-4419-882a-2fc91d71772f/preferences"`       // The display preferences of the simulation
	Reconciliation string `json:"reconciliation" example:"https://example.com/api/v1/simulations/3b1ea324-d438-4419-882a-2fc91d71772f/reconciliation"` // The reconciled view of the simulation
}

type Simulation struct {
	models.DefaultModel
	SimulationEditable
	Links SimulationLinks `json:"links"`

	// These fields are computed
	Subgroups []Subgroup `json:"subgroups"` // Subgroups of the simulation
}

func newSimulation(c *gin.Context, db *gorm.DB, model models.Simulation) (Simulation, error) {
	url := c.GetString(string(models.DBContextURL))

	simulation := Simulation{
		DefaultModel: model.DefaultModel,
		SimulationEditable: SimulationEditable{
			Name:        model.Name,
			PeriodID:    model.PeriodID,
			TotalIncome: model.TotalIncome,
			Note:        model.Note,
			Archived:    model.Archived,
		},
		Links: SimulationLinks{
			Self:           fmt.Sprintf("%s/v1/simulations/%s", url, model.ID),
			Budgets:        fmt.Sprintf("%s/v1/simulations/%s/budgets", url, model.ID),
			Subgroups:      fmt.Sprintf("%s/v1/simulations/%s/subgroups", url, model.ID),
			Preferences:    fmt.Sprintf("%s/v1/simulations/%s/preferences", url, model.ID),
			Reconciliation: fmt.Sprintf("%s/v1/simulations/%s/reconciliation", url, model.ID),
		},
	}

	subgroups, err := model.Subgroups(db)
	if err != nil {
		return Simulation{}, err
	}

	for _, subgroup := range subgroups {
		apiSubgroup, err := newSubgroup(c, db, subgroup)
		if err != nil {
			return Simulation{}, err
		}
		simulation.Subgroups = append(simulation.Subgroups, apiSubgroup)
	}

	return simulation, nil
}

type SimulationListResponse struct {
	Data       []Simulation `json:"data"`                                                          // List of Simulations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type SimulationCreateResponse struct {
	Data  []SimulationResponse `json:"data"`                                                          // List of the created Simulations or their respective error
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SimulationCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SimulationResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SimulationResponse struct {
	Data  *Simulation `json:"data"`                                                          // Data for the Simulation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SimulationQueryFilter struct {
	Name     string          `form:"name" filterField:"false"`   // By name
	PeriodID hogar_uuid.UUID `form:"period" filterField:"false"` // By ID of the seeding Period
	Note     string          `form:"note" filterField:"false"`   // By note
	Archived bool            `form:"archived"`                   // Is the Simulation archived?
	Search   string          `form:"search" filterField:"false"` // By string in name or note
	Offset   uint            `form:"offset" filterField:"false"` // The offset of the first Simulation returned. Defaults to 0.
	Limit    int             `form:"limit" filterField:"false"`  // Maximum number of Simulations to return. Defaults to 50.
}

func (f SimulationQueryFilter) model() (models.Simulation, error) {
	return models.Simulation{
		Archived: f.Archived,
	}, nil
}
