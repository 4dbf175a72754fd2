package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	hogar_uuid "github.com/hogar-budget/backend/internal/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name      string    `json:"name" example:"Luz" default:""`                            // Name of the category
	GrouperID uuid.UUID `json:"grouperId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the grouper the category belongs to
	TipoGasto string    `json:"tipoGasto" example:"Fijo" default:""`                      // Expense classification, empty when unclassified
	Note      string    `json:"note" example:"Electricity bill" default:""`               // Notes about the category
	Archived  bool      `json:"archived" example:"true" default:"false"`                  // Is the category archived?
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:      editable.Name,
		GrouperID: editable.GrouperID,
		TipoGasto: editable.TipoGasto,
		Note:      editable.Note,
		Archived:  editable.Archived,
	}
}

type CategoryLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The category itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Expenses for this category
	Grouper  string `json:"grouper" example:"https://example.com/api/v1/groupers/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`           // The grouper of this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:      model.Name,
			GrouperID: model.GrouperID,
			TipoGasto: model.TipoGasto,
			Note:      model.Note,
			Archived:  model.Archived,
		},
		Links: CategoryLinks{
			Self:     fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Expenses: fmt.Sprintf("%s/v1/expenses?category=%s", url, model.ID),
			Grouper:  fmt.Sprintf("%s/v1/groupers/%s", url, model.GrouperID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	GrouperID hogar_uuid.UUID `form:"grouper"`                    // By ID of the Grouper
	Name      string          `form:"name" filterField:"false"`   // By name
	TipoGasto string          `form:"tipoGasto"`                  // By expense classification
	Note      string          `form:"note" filterField:"false"`   // By note
	Archived  bool            `form:"archived"`                   // Is the Category archived?
	Search    string          `form:"search" filterField:"false"` // By string in name or note
	Offset    uint            `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit     int             `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	return models.Category{
		GrouperID: f.GrouperID.UUID,
		TipoGasto: f.TipoGasto,
		Archived:  f.Archived,
	}, nil
}
