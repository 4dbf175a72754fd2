package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemplateEntryEditable are the fields of a template entry that the API
// clients can edit.
type TemplateEntryEditable struct {
	CategoryID     uuid.UUID       `json:"categoryId" example:"e6d24d23-a93e-4a42-a802-5720d3b40f45"`
	Efectivo       decimal.Decimal `json:"efectivo" example:"180.50"`
	Credito        decimal.Decimal `json:"credito" example:"99.99"`
	AhorroEfectivo decimal.Decimal `json:"ahorroEfectivo" example:"20"`
	AhorroCredito  decimal.Decimal `json:"ahorroCredito" example:"0"`
}

type TemplateEditable struct {
	Name string `json:"name" example:"Mes austero"`
	Note string `json:"note" example:"Baseline for months with no extras"`

	// Entries replace the stored entries of the template as a whole.
	Entries []TemplateEntryEditable `json:"entries"`
}

func (editable TemplateEditable) model() models.Template {
	return models.Template{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type TemplateLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/templates/cf3301cd-e599-4664-96b6-75e9ea26343f"` // The template itself
}

// Template is the API representation of a template.
type Template struct {
	models.DefaultModel
	TemplateEditable
	Links TemplateLinks `json:"links"`
}

func newTemplate(c *gin.Context, db *gorm.DB, model models.Template) (Template, error) {
	url := c.GetString(string(models.DBContextURL))

	entries, err := model.Entries(db)
	if err != nil {
		return Template{}, err
	}

	editableEntries := make([]TemplateEntryEditable, 0, len(entries))
	for _, entry := range entries {
		editableEntries = append(editableEntries, TemplateEntryEditable{
			CategoryID:     entry.CategoryID,
			Efectivo:       entry.Efectivo,
			Credito:        entry.Credito,
			AhorroEfectivo: entry.AhorroEfectivo,
			AhorroCredito:  entry.AhorroCredito,
		})
	}

	return Template{
		DefaultModel: model.DefaultModel,
		TemplateEditable: TemplateEditable{
			Name:    model.Name,
			Note:    model.Note,
			Entries: editableEntries,
		},
		Links: TemplateLinks{
			Self: fmt.Sprintf("%s/v1/templates/%s", url, model.ID),
		},
	}, nil
}

type TemplateListResponse struct {
	Data       []Template  `json:"data"`                                                          // List of templates
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if one occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TemplateCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if one occurred
	Data  []TemplateResponse `json:"data"`                                                          // List of created templates
}

func (t *TemplateCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TemplateResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TemplateResponse struct {
	Data  *Template `json:"data"`                                                          // The template
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if one occurred
}

type TemplateQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Template returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Templates to return. Defaults to 50.
}

func (f TemplateQueryFilter) model() (models.Template, error) {
	return models.Template{}, nil
}
