package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"gorm.io/gorm"
)

// EstudioEditable represents all user configurable parameters
type EstudioEditable struct {
	Name           string      `json:"name" example:"Gastos fijos" default:""`                    // Name of the estudio
	GrouperPattern string      `json:"grouperPattern" example:"Servicios*" default:""`            // Glob pattern matched against grouper names
	Note           string      `json:"note" example:"Everything that repeats monthly"`            // Notes about the estudio
	GrouperIDs     []uuid.UUID `json:"grouperIds" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // Explicitly included groupers
}

func (editable EstudioEditable) model() models.Estudio {
	return models.Estudio{
		Name:           editable.Name,
		GrouperPattern: editable.GrouperPattern,
		Note:           editable.Note,
	}
}

type EstudioLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/estudios/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The estudio itself
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard?estudio=3b1ea324-d438-4419-882a-2fc91d71772f"` // Dashboard scoped to this estudio
}

type Estudio struct {
	models.DefaultModel
	EstudioEditable
	Links EstudioLinks `json:"links"`

	// These fields are computed
	ResolvedGroupers []uuid.UUID `json:"resolvedGroupers"` // Union of explicit members and pattern matches
}

func newEstudio(c *gin.Context, db *gorm.DB, model models.Estudio) (Estudio, error) {
	url := c.GetString(string(models.DBContextURL))

	var memberships []models.EstudioGrouper
	err := db.Where(&models.EstudioGrouper{EstudioID: model.ID}).Find(&memberships).Error
	if err != nil {
		return Estudio{}, err
	}

	grouperIDs := make([]uuid.UUID, 0, len(memberships))
	for _, membership := range memberships {
		grouperIDs = append(grouperIDs, membership.GrouperID)
	}

	groupers, err := model.Groupers(db)
	if err != nil {
		return Estudio{}, err
	}

	resolved := make([]uuid.UUID, 0, len(groupers))
	for _, grouper := range groupers {
		resolved = append(resolved, grouper.ID)
	}

	return Estudio{
		DefaultModel: model.DefaultModel,
		EstudioEditable: EstudioEditable{
			Name:           model.Name,
			GrouperPattern: model.GrouperPattern,
			Note:           model.Note,
			GrouperIDs:     grouperIDs,
		},
		Links: EstudioLinks{
			Self:      fmt.Sprintf("%s/v1/estudios/%s", url, model.ID),
			Dashboard: fmt.Sprintf("%s/v1/dashboard?estudio=%s", url, model.ID),
		},
		ResolvedGroupers: resolved,
	}, nil
}

type EstudioListResponse struct {
	Data       []Estudio   `json:"data"`                                                          // List of Estudios
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EstudioCreateResponse struct {
	Data  []EstudioResponse `json:"data"`                                                          // List of the created Estudios or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *EstudioCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, EstudioResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EstudioResponse struct {
	Data  *Estudio `json:"data"`                                                          // Data for the Estudio
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EstudioQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Estudio returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Estudios to return. Defaults to 50.
}

func (f EstudioQueryFilter) model() (models.Estudio, error) {
	return models.Estudio{}, nil
}
