package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SimulationBudgetEditable represents all user configurable parameters
// of a single simulation budget line.
type SimulationBudgetEditable struct {
	Efectivo        decimal.Decimal `json:"efectivo" example:"1200" minimum:"0"`            // Planned cash amount
	Credito         decimal.Decimal `json:"credito" example:"800" minimum:"0"`              // Planned credit amount
	AhorroEfectivo  decimal.Decimal `json:"ahorroEfectivo" example:"200" minimum:"0"`       // Cash portion set aside as savings
	AhorroCredito   decimal.Decimal `json:"ahorroCredito" example:"0" minimum:"0"`          // Credit portion set aside as savings
	NeedsAdjustment bool            `json:"needsAdjustment" example:"true" default:"false"` // Marked for later review
}

type SimulationBudgetsData struct {
	SimulationID uuid.UUID                           `json:"simulationId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the simulation
	Entries      map[string]SimulationBudgetEditable `json:"entries"`                                                     // Budget lines keyed by category ID
}

type SimulationBudgetsResponse struct {
	Data  *SimulationBudgetsData `json:"data"`                                                          // The budget lines of the simulation
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/budgets [options]
func OptionsSimulationBudgets(c *gin.Context) {
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

	httputil.OptionsGetPut(c)
}

// @Summary		Get simulation budgets
// @Description	Returns the budget lines of a simulation keyed by category ID
// @Tags			Simulations
// @Produce		json
// @Success		200	{object}	SimulationBudgetsResponse
// @Failure		400	{object}	SimulationBudgetsResponse
// @Failure		404	{object}	SimulationBudgetsResponse
// @Failure		500	{object}	SimulationBudgetsResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/budgets [get]
func GetSimulationBudgets(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var budgets []models.SimulationBudget
	err = models.DB.Where(&models.SimulationBudget{SimulationID: simulation.ID}).Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	entries := make(map[string]SimulationBudgetEditable, len(budgets))
	for _, budget := range budgets {
		entries[budget.CategoryID.String()] = SimulationBudgetEditable{
			Efectivo:        budget.Efectivo,
			Credito:         budget.Credito,
			AhorroEfectivo:  budget.AhorroEfectivo,
			AhorroCredito:   budget.AhorroCredito,
			NeedsAdjustment: budget.NeedsAdjustment,
		}
	}

	c.JSON(http.StatusOK, SimulationBudgetsResponse{
		Data: &SimulationBudgetsData{
			SimulationID: simulation.ID,
			Entries:      entries,
		},
	})
}

// @Summary		Replace simulation budgets
// @Description	Upserts the budget lines sent in the body. Lines for categories not in the body are left untouched. The whole update is one transaction, the last writer wins.
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200		{object}	SimulationBudgetsResponse
// @Failure		400		{object}	SimulationBudgetsResponse
// @Failure		404		{object}	SimulationBudgetsResponse
// @Failure		500		{object}	SimulationBudgetsResponse
// @Param			id		path		URIID									true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			entries	body		map[string]SimulationBudgetEditable	true	"Budget lines keyed by category ID"
// @Router			/v1/simulations/{id}/budgets [put]
func PutSimulationBudgets(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	var entries map[string]SimulationBudgetEditable
	err = httputil.BindData(c, &entries)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SimulationBudgetsResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for key, entry := range entries {
			categoryID, err := httputil.UUIDFromString(key)
			if err != nil {
				return err
			}

			var budget models.SimulationBudget
			err = tx.Where(&models.SimulationBudget{
				SimulationID: simulation.ID,
				CategoryID:   categoryID,
			}).First(&budget).Error

			if err != nil {
				budget = models.SimulationBudget{
					SimulationID: simulation.ID,
					CategoryID:   categoryID,
				}
				budget.Efectivo = entry.Efectivo
				budget.Credito = entry.Credito
				budget.AhorroEfectivo = entry.AhorroEfectivo
				budget.AhorroCredito = entry.AhorroCredito
				budget.NeedsAdjustment = entry.NeedsAdjustment

				err := tx.Create(&budget).Error
				if err != nil {
					return err
				}
				continue
			}

			// Select forces zero values to be written as well
			err = tx.Model(&budget).
				Select("Efectivo", "Credito", "AhorroEfectivo", "AhorroCredito", "NeedsAdjustment").
				Updates(models.SimulationBudget{
					Efectivo:        entry.Efectivo,
					Credito:         entry.Credito,
					AhorroEfectivo:  entry.AhorroEfectivo,
					AhorroCredito:   entry.AhorroCredito,
					NeedsAdjustment: entry.NeedsAdjustment,
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
