package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterTemplateRoutes registers the routes for templates with
// the RouterGroup that is passed.
func RegisterTemplateRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTemplateList)
		r.GET("", GetTemplates)
		r.POST("", CreateTemplates)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", OptionsTemplateDetail)
		r.GET("/:id", GetTemplate)
		r.PATCH("/:id", UpdateTemplate)
		r.DELETE("/:id", DeleteTemplate)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Router			/v1/templates [options]
func OptionsTemplateList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [options]
func OptionsTemplateDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Template{})
}

// replaceTemplateEntries replaces the entries of a template.
func replaceTemplateEntries(tx *gorm.DB, template models.Template, editable TemplateEditable) error {
	err := tx.Where(&models.TemplateEntry{TemplateID: template.ID}).Delete(&models.TemplateEntry{}).Error
	if err != nil {
		return err
	}

	for _, entry := range editable.Entries {
		err := tx.First(&models.Category{}, entry.CategoryID).Error
		if err != nil {
			return err
		}

		err = tx.Create(&models.TemplateEntry{
			TemplateID:     template.ID,
			CategoryID:     entry.CategoryID,
			Efectivo:       entry.Efectivo,
			Credito:        entry.Credito,
			AhorroEfectivo: entry.AhorroEfectivo,
			AhorroCredito:  entry.AhorroCredito,
		}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Create template
// @Description	Creates a new template
// @Tags			Templates
// @Produce		json
// @Success		201			{object}	TemplateCreateResponse
// @Failure		400			{object}	TemplateCreateResponse
// @Failure		404			{object}	TemplateCreateResponse
// @Failure		500			{object}	TemplateCreateResponse
// @Param			templates	body		[]TemplateEditable	true	"Templates"
// @Router			/v1/templates [post]
func CreateTemplates(c *gin.Context) {
	var editables []TemplateEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TemplateCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TemplateCreateResponse{}

	for _, editable := range editables {
		template := editable.model()

		// The template and its entries are saved together
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Create(&template).Error
			if err != nil {
				return err
			}

			return replaceTemplateEntries(tx, template, editable)
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newTemplate(c, models.DB, template)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, TemplateResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get templates
// @Description	Returns a list of templates
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	TemplateListResponse
// @Failure		400	{object}	TemplateListResponse
// @Failure		500	{object}	TemplateListResponse
// @Router			/v1/templates [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Template returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Templates to return. Defaults to 50."
func GetTemplates(c *gin.Context) {
	var filter TemplateQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Templates and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var templates []models.Template
	err = q.Find(&templates).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TemplateListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Template, 0)
	for _, template := range templates {
		apiResource, err := newTemplate(c, models.DB, template)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TemplateListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, TemplateListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get template
// @Description	Returns a specific template
// @Tags			Templates
// @Produce		json
// @Success		200	{object}	TemplateResponse
// @Failure		400	{object}	TemplateResponse
// @Failure		404	{object}	TemplateResponse
// @Failure		500	{object}	TemplateResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [get]
func GetTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.Template
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	data, err := newTemplate(c, models.DB, template)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TemplateResponse{Data: &data})
}

// @Summary		Update template
// @Description	Update an existing template. Only values to be updated need to be specified. When entries are part of the body, they replace the stored entries as a whole.
// @Tags			Templates
// @Accept			json
// @Produce		json
// @Success		200			{object}	TemplateResponse
// @Failure		400			{object}	TemplateResponse
// @Failure		404			{object}	TemplateResponse
// @Failure		500			{object}	TemplateResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			template	body		TemplateEditable	true	"Template"
// @Router			/v1/templates/{id} [patch]
func UpdateTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	var template models.Template
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TemplateEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	var data TemplateEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	// Entries are not a column, they are replaced separately
	replaceEntries := slices.Contains(updateFields, any("Entries"))
	updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == any("Entries") })

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if len(updateFields) > 0 {
			err := tx.Model(&template).Select("", updateFields...).Updates(data.model()).Error
			if err != nil {
				return err
			}
		}

		if replaceEntries {
			return replaceTemplateEntries(tx, template, data)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	r, err := newTemplate(c, models.DB, template)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TemplateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TemplateResponse{Data: &r})
}

// @Summary		Delete template
// @Description	Deletes a template and its entries
// @Tags			Templates
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/templates/{id} [delete]
func DeleteTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var template models.Template
	err = models.DB.First(&template, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.TemplateEntry{TemplateID: template.ID}).Delete(&models.TemplateEntry{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&template).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ApplyTemplateEditable is the request body for applying a template to
// a simulation.
type ApplyTemplateEditable struct {
	TemplateID uuid.UUID `json:"templateId" example:"cf3301cd-e599-4664-96b6-75e9ea26343f"` // The template to apply

	// When Overwrite is set, existing simulation budgets for the
	// template's categories are replaced. Otherwise the template only
	// fills in categories that have no budget yet.
	Overwrite bool `json:"overwrite" example:"false"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/apply-template [options]
func OptionsApplyTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Simulation{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Apply template
// @Description	Copies the entries of a template into the budgets of a simulation. Without the overwrite flag, only categories without a budget are filled in.
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200		{object}	SimulationBudgetsResponse
// @Failure		400		{object}	SimulationBudgetsResponse
// @Failure		404		{object}	SimulationBudgetsResponse
// @Failure		500		{object}	SimulationBudgetsResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			apply	body		ApplyTemplateEditable	true	"Template application"
// @Router			/v1/simulations/{id}/apply-template [post]
func ApplyTemplate(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var sim models.Simulation
	err = models.DB.First(&sim, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var editable ApplyTemplateEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var template models.Template
	err = models.DB.First(&template, editable.TemplateID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	entries, err := template.Entries(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			var budget models.SimulationBudget
			err := tx.Where(&models.SimulationBudget{
				SimulationID: sim.ID,
				CategoryID:   entry.CategoryID,
			}).First(&budget).Error

			if err == nil && !editable.Overwrite {
				continue
			}

			if err != nil {
				err = tx.Create(&models.SimulationBudget{
					SimulationID:   sim.ID,
					CategoryID:     entry.CategoryID,
					Efectivo:       entry.Efectivo,
					Credito:        entry.Credito,
					AhorroEfectivo: entry.AhorroEfectivo,
					AhorroCredito:  entry.AhorroCredito,
				}).Error
				if err != nil {
					return err
				}
				continue
			}

			err = tx.Model(&budget).
				Select("Efectivo", "Credito", "AhorroEfectivo", "AhorroCredito").
				Updates(models.SimulationBudget{
					Efectivo:       entry.Efectivo,
					Credito:        entry.Credito,
					AhorroEfectivo: entry.AhorroEfectivo,
					AhorroCredito:  entry.AhorroCredito,
				}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	GetSimulationBudgets(c)
}
