package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/internal/types"
)

// PeriodEditable represents all user configurable parameters
type PeriodEditable struct {
	Name     string      `json:"name" example:"Marzo 2026" default:""`             // Name of the period
	Month    types.Month `json:"month" example:"2026-03"`                          // Month the period covers
	Note     string      `json:"note" example:"Includes the car insurance charge"` // Notes about the period
	Archived bool        `json:"archived" example:"true" default:"false"`          // Is the period archived?
}

func (editable PeriodEditable) model() models.Period {
	return models.Period{
		Name:     editable.Name,
		Month:    editable.Month,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type PeriodLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/periods/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The period itself
	Expenses  string `json:"expenses" example:"https://example.com/api/v1/expenses?period=3b1ea324-d438-4419-882a-2fc91d71772f"`   // Expenses in this period
	Budgets   string `json:"budgets" example:"https://example.com/api/v1/budgets?period=3b1ea324-d438-4419-882a-2fc91d71772f"`     // Budgets for this period
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard?period=3b1ea324-d438-4419-882a-2fc91d71772f"` // Dashboard for this period
}

type Period struct {
	models.DefaultModel
	PeriodEditable
	Links PeriodLinks `json:"links"`
}

func newPeriod(c *gin.Context, model models.Period) Period {
	url := c.GetString(string(models.DBContextURL))

	return Period{
		DefaultModel: model.DefaultModel,
		PeriodEditable: PeriodEditable{
			Name:     model.Name,
			Month:    model.Month,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: PeriodLinks{
			Self:      fmt.Sprintf("%s/v1/periods/%s", url, model.ID),
			Expenses:  fmt.Sprintf("%s/v1/expenses?period=%s", url, model.ID),
			Budgets:   fmt.Sprintf("%s/v1/budgets?period=%s", url, model.ID),
			Dashboard: fmt.Sprintf("%s/v1/dashboard?period=%s", url, model.ID),
		},
	}
}

type PeriodListResponse struct {
	Data       []Period    `json:"data"`                                                          // List of Periods
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PeriodCreateResponse struct {
	Data  []PeriodResponse `json:"data"`                                                          // List of the created Periods or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PeriodCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PeriodResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PeriodResponse struct {
	Data  *Period `json:"data"`                                                          // Data for the Period
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PeriodQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Month    string `form:"month" filterField:"false"`  // By month in YYYY-MM format
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the Period archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Period returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Periods to return. Defaults to 50.
}

func (f PeriodQueryFilter) model() (models.Period, error) {
	return models.Period{
		Archived: f.Archived,
	}, nil
}
