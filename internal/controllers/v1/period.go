package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/hogar-budget/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterPeriodRoutes registers the routes for periods with
// the RouterGroup that is passed.
func RegisterPeriodRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPeriodList)
		r.GET("", GetPeriods)
		r.POST("", CreatePeriods)
	}

	// Period with ID
	{
		r.OPTIONS("/:id", OptionsPeriodDetail)
		r.GET("/:id", GetPeriod)
		r.PATCH("/:id", UpdatePeriod)
		r.DELETE("/:id", DeletePeriod)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Router			/v1/periods [options]
func OptionsPeriodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/periods/{id} [options]
func OptionsPeriodDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Period{})
}

// @Summary		Create period
// @Description	Creates a new period
// @Tags			Periods
// @Produce		json
// @Success		201		{object}	PeriodCreateResponse
// @Failure		400		{object}	PeriodCreateResponse
// @Failure		500		{object}	PeriodCreateResponse
// @Param			periods	body		[]PeriodEditable	true	"Periods"
// @Router			/v1/periods [post]
func CreatePeriods(c *gin.Context) {
	var editables []PeriodEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PeriodCreateResponse{}

	for _, editable := range editables {
		period := editable.model()

		err = models.DB.Create(&period).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPeriod(c, period)
		r.Data = append(r.Data, PeriodResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get periods
// @Description	Returns a list of periods
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodListResponse
// @Failure		400	{object}	PeriodListResponse
// @Failure		500	{object}	PeriodListResponse
// @Router			/v1/periods [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			month		query	string	false	"Filter by month in YYYY-MM format"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the period archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Period returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Periods to return. Defaults to 50."
func GetPeriods(c *gin.Context) {
	var filter PeriodQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("month DESC, name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, PeriodListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("month = ?", month)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Periods and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var periods []models.Period
	err = q.Find(&periods).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PeriodListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Period, 0)
	for _, period := range periods {
		data = append(data, newPeriod(c, period))
	}

	c.JSON(http.StatusOK, PeriodListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get period
// @Description	Returns a specific period
// @Tags			Periods
// @Produce		json
// @Success		200	{object}	PeriodResponse
// @Failure		400	{object}	PeriodResponse
// @Failure		404	{object}	PeriodResponse
// @Failure		500	{object}	PeriodResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/periods/{id} [get]
func GetPeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	var period models.Period
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	data := newPeriod(c, period)
	c.JSON(http.StatusOK, PeriodResponse{Data: &data})
}

// @Summary		Update period
// @Description	Update an existing period. Only values to be updated need to be specified.
// @Tags			Periods
// @Accept			json
// @Produce		json
// @Success		200		{object}	PeriodResponse
// @Failure		400		{object}	PeriodResponse
// @Failure		404		{object}	PeriodResponse
// @Failure		500		{object}	PeriodResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			period	body		PeriodEditable	true	"Period"
// @Router			/v1/periods/{id} [patch]
func UpdatePeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	var period models.Period
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PeriodEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	var data PeriodEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&period).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	r := newPeriod(c, period)
	c.JSON(http.StatusOK, PeriodResponse{Data: &r})
}

// @Summary		Delete period
// @Description	Deletes a period
// @Tags			Periods
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/periods/{id} [delete]
func DeletePeriod(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var period models.Period
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
