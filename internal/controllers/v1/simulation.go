package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/internal/prefs"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterSimulationRoutes registers the routes for simulations with
// the RouterGroup that is passed.
func RegisterSimulationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSimulationList)
		r.GET("", GetSimulations)
		r.POST("", CreateSimulations)
	}

	// Simulation with ID
	{
		r.OPTIONS("/:id", OptionsSimulationDetail)
		r.GET("/:id", GetSimulation)
		r.PATCH("/:id", UpdateSimulation)
		r.DELETE("/:id", DeleteSimulation)
	}

	// Budgets of the simulation
	{
		r.OPTIONS("/:id/budgets", OptionsSimulationBudgets)
		r.GET("/:id/budgets", GetSimulationBudgets)
		r.PUT("/:id/budgets", PutSimulationBudgets)
	}

	// Subgroups of the simulation
	{
		r.OPTIONS("/:id/subgroups", OptionsSimulationSubgroups)
		r.GET("/:id/subgroups", GetSimulationSubgroups)
		r.POST("/:id/subgroups", CreateSimulationSubgroup)
	}

	// Display preferences of the simulation
	{
		r.OPTIONS("/:id/preferences", OptionsSimulationPreferences)
		r.GET("/:id/preferences", GetSimulationPreferences)
		r.PUT("/:id/preferences", PutSimulationPreferences)
		r.DELETE("/:id/preferences", DeleteSimulationPreferences)
	}

	// Reconciled view of the simulation
	{
		r.OPTIONS("/:id/reconciliation", OptionsSimulationReconciliation)
		r.GET("/:id/reconciliation", GetSimulationReconciliation)
	}

	// Template application
	{
		r.OPTIONS("/:id/apply-template", OptionsApplyTemplate)
		r.POST("/:id/apply-template", ApplyTemplate)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Router			/v1/simulations [options]
func OptionsSimulationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id} [options]
func OptionsSimulationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Simulation{})
}

// seedSimulationBudgets copies the period budgets into the simulation.
// Cash and credit budgets of the same category merge into a single
// simulation budget line.
func seedSimulationBudgets(tx *gorm.DB, simulation models.Simulation) error {
	if simulation.PeriodID == nil {
		return nil
	}

	var budgets []models.Budget
	err := tx.Where(&models.Budget{PeriodID: *simulation.PeriodID}).Find(&budgets).Error
	if err != nil {
		return err
	}

	lines := make(map[string]*models.SimulationBudget)
	order := make([]string, 0, len(budgets))
	for _, budget := range budgets {
		key := budget.CategoryID.String()
		line, ok := lines[key]
		if !ok {
			line = &models.SimulationBudget{
				SimulationID: simulation.ID,
				CategoryID:   budget.CategoryID,
			}
			lines[key] = line
			order = append(order, key)
		}

		switch budget.PaymentMethod {
		case models.PaymentMethodEfectivo:
			line.Efectivo = line.Efectivo.Add(budget.Amount)
		case models.PaymentMethodCredito:
			line.Credito = line.Credito.Add(budget.Amount)
		}
	}

	for _, key := range order {
		err := tx.Create(lines[key]).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Create simulation
// @Description	Creates a new simulation. When a period is referenced, its budgets seed the simulation budgets.
// @Tags			Simulations
// @Produce		json
// @Success		201			{object}	SimulationCreateResponse
// @Failure		400			{object}	SimulationCreateResponse
// @Failure		404			{object}	SimulationCreateResponse
// @Failure		500			{object}	SimulationCreateResponse
// @Param			simulations	body		[]SimulationEditable	true	"Simulations"
// @Router			/v1/simulations [post]
func CreateSimulations(c *gin.Context) {
	var editables []SimulationEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SimulationCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SimulationCreateResponse{}

	for _, editable := range editables {
		simulation := editable.model()

		err := models.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Create(&simulation).Error
			if err != nil {
				return err
			}

			return seedSimulationBudgets(tx, simulation)
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newSimulation(c, models.DB, simulation)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, SimulationResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get simulations
// @Description	Returns a list of simulations
// @Tags			Simulations
// @Produce		json
// @Success		200	{object}	SimulationListResponse
// @Failure		400	{object}	SimulationListResponse
// @Failure		500	{object}	SimulationListResponse
// @Router			/v1/simulations [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			period		query	string	false	"Filter by the seeding period ID"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the simulation archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Simulation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Simulations to return. Defaults to 50."
func GetSimulations(c *gin.Context) {
	var filter SimulationQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// The period reference is a pointer column, a struct filter cannot
	// express it
	if slices.Contains(setFields, "PeriodID") {
		q = q.Where("period_id = ?", filter.PeriodID.UUID)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Simulations and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var simulations []models.Simulation
	err = q.Find(&simulations).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SimulationListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Simulation, 0)
	for _, simulation := range simulations {
		apiResource, err := newSimulation(c, models.DB, simulation)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SimulationListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, SimulationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get simulation
// @Description	Returns a specific simulation
// @Tags			Simulations
// @Produce		json
// @Success		200	{object}	SimulationResponse
// @Failure		400	{object}	SimulationResponse
// @Failure		404	{object}	SimulationResponse
// @Failure		500	{object}	SimulationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id} [get]
func GetSimulation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	data, err := newSimulation(c, models.DB, simulation)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SimulationResponse{Data: &data})
}

// @Summary		Update simulation
// @Description	Update an existing simulation. Only values to be updated need to be specified.
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200			{object}	SimulationResponse
// @Failure		400			{object}	SimulationResponse
// @Failure		404			{object}	SimulationResponse
// @Failure		500			{object}	SimulationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			simulation	body		SimulationEditable	true	"Simulation"
// @Router			/v1/simulations/{id} [patch]
func UpdateSimulation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SimulationEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	var data SimulationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&simulation).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	r, err := newSimulation(c, models.DB, simulation)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SimulationResponse{Data: &r})
}

// @Summary		Delete simulation
// @Description	Deletes a simulation with its budgets, subgroups and preferences
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id} [delete]
func DeleteSimulation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.SubgroupMembership{SimulationID: simulation.ID}).Delete(&models.SubgroupMembership{}).Error
		if err != nil {
			return err
		}

		err = tx.Where(&models.Subgroup{SimulationID: simulation.ID}).Delete(&models.Subgroup{}).Error
		if err != nil {
			return err
		}

		err = tx.Where(&models.SimulationBudget{SimulationID: simulation.ID}).Delete(&models.SimulationBudget{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&simulation).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Stored preferences go with the simulation
	err = prefs.Active.Clear(simulation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
