package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/models"
	"gorm.io/gorm"
)

// GrouperEditable represents all user configurable parameters
type GrouperEditable struct {
	Name     string `json:"name" example:"Servicios" default:""`                 // Name of the grouper
	Note     string `json:"note" example:"Recurring household bills" default:""` // Notes about the grouper
	Archived bool   `json:"archived" example:"true" default:"false"`             // Is the grouper archived?
}

func (editable GrouperEditable) model() models.Grouper {
	return models.Grouper{
		Name:     editable.Name,
		Note:     editable.Note,
		Archived: editable.Archived,
	}
}

type GrouperLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/groupers/3b1ea324-d438-4419-882a-2fc91d71772f"`                 // The grouper itself
	Categories string `json:"categories" example:"https://example.com/api/v1/categories?grouper=3b1ea324-d438-4419-882a-2fc91d71772f"` // Categories for this grouper
}

type Grouper struct {
	models.DefaultModel
	GrouperEditable
	Links GrouperLinks `json:"links"`

	// These fields are computed
	Categories []Category `json:"categories"` // Categories of the grouper
}

func newGrouper(c *gin.Context, db *gorm.DB, model models.Grouper) (Grouper, error) {
	url := c.GetString(string(models.DBContextURL))

	grouper := Grouper{
		DefaultModel: model.DefaultModel,
		GrouperEditable: GrouperEditable{
			Name:     model.Name,
			Note:     model.Note,
			Archived: model.Archived,
		},
		Links: GrouperLinks{
			Self:       fmt.Sprintf("%s/v1/groupers/%s", url, model.ID),
			Categories: fmt.Sprintf("%s/v1/categories?grouper=%s", url, model.ID),
		},
	}

	categories, err := model.Categories(db)
	if err != nil {
		return Grouper{}, err
	}

	for _, category := range categories {
		grouper.Categories = append(grouper.Categories, newCategory(c, category))
	}

	return grouper, nil
}

type GrouperListResponse struct {
	Data       []Grouper   `json:"data"`                                                          // List of Groupers
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GrouperCreateResponse struct {
	Data  []GrouperResponse `json:"data"`                                                          // List of the created Groupers or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GrouperCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GrouperResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GrouperResponse struct {
	Data  *Grouper `json:"data"`                                                          // Data for the Grouper
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GrouperQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Archived bool   `form:"archived"`                   // Is the Grouper archived?
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Grouper returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Groupers to return. Defaults to 50.
}

func (f GrouperQueryFilter) model() (models.Grouper, error) {
	return models.Grouper{
		Archived: f.Archived,
	}, nil
}
