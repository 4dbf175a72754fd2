package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterGrouperRoutes registers the routes for groupers with
// the RouterGroup that is passed.
func RegisterGrouperRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGrouperList)
		r.GET("", GetGroupers)
		r.POST("", CreateGroupers)
	}

	// Grouper with ID
	{
		r.OPTIONS("/:id", OptionsGrouperDetail)
		r.GET("/:id", GetGrouper)
		r.PATCH("/:id", UpdateGrouper)
		r.DELETE("/:id", DeleteGrouper)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groupers
// @Success		204
// @Router			/v1/groupers [options]
func OptionsGrouperList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groupers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groupers/{id} [options]
func OptionsGrouperDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Grouper{})
}

// @Summary		Create grouper
// @Description	Creates a new grouper
// @Tags			Groupers
// @Produce		json
// @Success		201			{object}	GrouperCreateResponse
// @Failure		400			{object}	GrouperCreateResponse
// @Failure		500			{object}	GrouperCreateResponse
// @Param			groupers	body		[]GrouperEditable	true	"Groupers"
// @Router			/v1/groupers [post]
func CreateGroupers(c *gin.Context) {
	var editables []GrouperEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GrouperCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GrouperCreateResponse{}

	for _, editable := range editables {
		grouper := editable.model()

		err = models.DB.Create(&grouper).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newGrouper(c, models.DB, grouper)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, GrouperResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get groupers
// @Description	Returns a list of groupers
// @Tags			Groupers
// @Produce		json
// @Success		200	{object}	GrouperListResponse
// @Failure		400	{object}	GrouperListResponse
// @Failure		500	{object}	GrouperListResponse
// @Router			/v1/groupers [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the grouper archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first Grouper returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Groupers to return. Defaults to 50."
func GetGroupers(c *gin.Context) {
	var filter GrouperQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperListResponse{
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

	// Default to 50 Groupers and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groupers []models.Grouper
	err = q.Find(&groupers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GrouperListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Grouper, 0)
	for _, grouper := range groupers {
		apiResource, err := newGrouper(c, models.DB, grouper)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GrouperListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, GrouperListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get grouper
// @Description	Returns a specific grouper
// @Tags			Groupers
// @Produce		json
// @Success		200	{object}	GrouperResponse
// @Failure		400	{object}	GrouperResponse
// @Failure		404	{object}	GrouperResponse
// @Failure		500	{object}	GrouperResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groupers/{id} [get]
func GetGrouper(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	var grouper models.Grouper
	err = models.DB.First(&grouper, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	data, err := newGrouper(c, models.DB, grouper)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GrouperResponse{Data: &data})
}

// @Summary		Update grouper
// @Description	Update an existing grouper. Only values to be updated need to be specified.
// @Tags			Groupers
// @Accept			json
// @Produce		json
// @Success		200		{object}	GrouperResponse
// @Failure		400		{object}	GrouperResponse
// @Failure		404		{object}	GrouperResponse
// @Failure		500		{object}	GrouperResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			grouper	body		GrouperEditable	true	"Grouper"
// @Router			/v1/groupers/{id} [patch]
func UpdateGrouper(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	var grouper models.Grouper
	err = models.DB.First(&grouper, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GrouperEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	var data GrouperEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&grouper).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	r, err := newGrouper(c, models.DB, grouper)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GrouperResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GrouperResponse{Data: &r})
}

// @Summary		Delete grouper
// @Description	Deletes a grouper
// @Tags			Groupers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groupers/{id} [delete]
func DeleteGrouper(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var grouper models.Grouper
	err = models.DB.First(&grouper, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&grouper).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
