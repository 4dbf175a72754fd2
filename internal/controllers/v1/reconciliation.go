package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/internal/prefs"
	"github.com/hogar-budget/backend/internal/simulation"
	"github.com/shopspring/decimal"
)

// ReconciliationQuery holds the per-request overrides for the
// reconciliation. Both override the stored value without persisting.
type ReconciliationQuery struct {
	Income    *decimal.Decimal `form:"income"`    // Overrides the total income of the simulation
	SortState *int             `form:"sortState"` // Overrides the stored sort state
}

// ReconciliationResponse is the response for the reconciliation endpoint.
type ReconciliationResponse struct {
	Data  *simulation.Result `json:"data"`
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/reconciliation [options]
func OptionsSimulationReconciliation(c *gin.Context) {
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

	httputil.OptionsGet(c)
}

// @Summary		Reconcile simulation
// @Description	Computes display rows, running balances, subgroup subtotals and grand totals for a simulation, honoring its stored display preferences
// @Tags			Simulations
// @Produce		json
// @Success		200			{object}	ReconciliationResponse
// @Failure		400			{object}	ReconciliationResponse
// @Failure		404			{object}	ReconciliationResponse
// @Failure		500			{object}	ReconciliationResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income		query		string	false	"Override the total income for this computation"
// @Param			sortState	query		int		false	"Override the stored sort state for this computation"
// @Router			/v1/simulations/{id}/reconciliation [get]
func GetSimulationReconciliation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	var query ReconciliationQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ReconciliationResponse{
			Error: &s,
		})
		return
	}

	var sim models.Simulation
	err = models.DB.First(&sim, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	input, err := reconcileInput(sim, query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReconciliationResponse{
			Error: &s,
		})
		return
	}

	result := simulation.Reconcile(input)
	c.JSON(http.StatusOK, ReconciliationResponse{Data: &result})
}

// reconcileInput assembles the core input from the stored budgets,
// subgroups and display preferences of a simulation.
func reconcileInput(sim models.Simulation, query ReconciliationQuery) (simulation.ReconcileInput, error) {
	var budgets []models.SimulationBudget
	err := models.DB.
		Where(&models.SimulationBudget{SimulationID: sim.ID}).
		Order("category_id ASC").
		Find(&budgets).Error
	if err != nil {
		return simulation.ReconcileInput{}, err
	}

	entries := make(map[simulation.ID]simulation.BudgetEntry, len(budgets))
	categoryIDs := make([]uuid.UUID, 0, len(budgets))
	for _, budget := range budgets {
		entries[simulation.CanonicalID(budget.CategoryID)] = simulation.BudgetEntry{
			Efectivo:        budget.Efectivo,
			Credito:         budget.Credito,
			AhorroEfectivo:  budget.AhorroEfectivo,
			AhorroCredito:   budget.AhorroCredito,
			NeedsAdjustment: budget.NeedsAdjustment,
		}
		categoryIDs = append(categoryIDs, budget.CategoryID)
	}

	var categories []models.Category
	if len(categoryIDs) > 0 {
		err = models.DB.Where("id IN ?", categoryIDs).Order("name ASC").Find(&categories).Error
		if err != nil {
			return simulation.ReconcileInput{}, err
		}
	}

	coreCategories := make([]simulation.Category, 0, len(categories))
	for _, category := range categories {
		coreCategories = append(coreCategories, simulation.Category{
			ID:        simulation.CanonicalID(category.ID),
			Name:      category.Name,
			TipoGasto: simulation.TipoGasto(category.TipoGasto),
		})
	}

	subgroups, err := sim.Subgroups(models.DB)
	if err != nil {
		return simulation.ReconcileInput{}, err
	}

	coreSubgroups := make([]simulation.Subgroup, 0, len(subgroups))
	for _, subgroup := range subgroups {
		members, err := subgroup.Members(models.DB)
		if err != nil {
			return simulation.ReconcileInput{}, err
		}

		memberIDs := make([]simulation.ID, 0, len(members))
		for _, member := range members {
			memberIDs = append(memberIDs, simulation.CanonicalID(member.CategoryID))
		}

		coreSubgroups = append(coreSubgroups, simulation.Subgroup{
			ID:          simulation.CanonicalID(subgroup.ID),
			Name:        subgroup.Name,
			CategoryIDs: memberIDs,
		})
	}

	p := prefs.Active.Load(sim.ID)

	excluded := make([]simulation.ID, 0, len(p.ExcludedCategoryIds))
	for _, id := range p.ExcludedCategoryIds {
		excluded = append(excluded, simulation.CanonicalID(id))
	}

	// Collapsed subgroups are stored, the core wants the expanded set.
	expanded := make([]simulation.ID, 0, len(coreSubgroups))
	for _, subgroup := range coreSubgroups {
		if !p.Collapsed[string(subgroup.ID)] {
			expanded = append(expanded, subgroup.ID)
		}
	}

	hidden := make(map[simulation.ID]bool, len(p.Hidden))
	for id, value := range p.Hidden {
		hidden[simulation.CanonicalID(id)] = value
	}

	categoryOrder := make(simulation.Order, 0, len(p.CategoryOrder))
	for _, id := range p.CategoryOrder {
		categoryOrder = append(categoryOrder, simulation.CanonicalID(id))
	}

	subgroupOrder := make(simulation.Order, 0, len(p.SubgroupOrder))
	for _, id := range p.SubgroupOrder {
		subgroupOrder = append(subgroupOrder, simulation.CanonicalID(id))
	}

	sortState := simulation.SortState(p.SortState)
	if query.SortState != nil {
		sortState = simulation.SortState(*query.SortState)
	}

	income := sim.TotalIncome
	if query.Income != nil {
		income = *query.Income
	}

	return simulation.ReconcileInput{
		Input: simulation.Input{
			Categories:    coreCategories,
			Subgroups:     coreSubgroups,
			CategoryOrder: categoryOrder,
			SubgroupOrder: subgroupOrder,
			SortState:     sortState,
			Excluded:      simulation.NewIDSet(excluded...),
			Expanded:      simulation.NewIDSet(expanded...),
		},
		Entries:     entries,
		TotalIncome: income,
		Hidden:      hidden,
	}, nil
}
