package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/internal/prefs"
)

// PreferencesResponse is the response for the simulation preferences endpoints.
type PreferencesResponse struct {
	Data  *prefs.Preferences `json:"data"`
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
// @Router			/v1/simulations/{id}/preferences [options]
func OptionsSimulationPreferences(c *gin.Context) {
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

	httputil.OptionsGetPutDelete(c)
}

// @Summary		Get preferences
// @Description	Returns the display preferences of a simulation. When nothing has been saved, the defaults are returned.
// @Tags			Simulations
// @Produce		json
// @Success		200	{object}	PreferencesResponse
// @Failure		400	{object}	PreferencesResponse
// @Failure		404	{object}	PreferencesResponse
// @Failure		500	{object}	PreferencesResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/preferences [get]
func GetSimulationPreferences(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferencesResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferencesResponse{
			Error: &s,
		})
		return
	}

	p := prefs.Active.Load(simulation.ID)
	c.JSON(http.StatusOK, PreferencesResponse{Data: &p})
}

// @Summary		Update preferences
// @Description	Replaces the display preferences of a simulation
// @Tags			Simulations
// @Accept			json
// @Produce		json
// @Success		200			{object}	PreferencesResponse
// @Failure		400			{object}	PreferencesResponse
// @Failure		404			{object}	PreferencesResponse
// @Failure		500			{object}	PreferencesResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			preferences	body		prefs.Preferences	true	"Preferences"
// @Router			/v1/simulations/{id}/preferences [put]
func PutSimulationPreferences(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferencesResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferencesResponse{
			Error: &s,
		})
		return
	}

	data := prefs.Default()
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PreferencesResponse{
			Error: &s,
		})
		return
	}

	err = prefs.Active.Save(simulation.ID, data)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, PreferencesResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{Data: &data})
}

// @Summary		Reset preferences
// @Description	Removes the stored display preferences of a simulation, resetting it to the defaults
// @Tags			Simulations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/preferences [delete]
func DeleteSimulationPreferences(c *gin.Context) {
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

	err = prefs.Active.Clear(simulation.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
