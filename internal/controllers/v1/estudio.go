package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterEstudioRoutes registers the routes for estudios with
// the RouterGroup that is passed.
func RegisterEstudioRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEstudioList)
		r.GET("", GetEstudios)
		r.POST("", CreateEstudios)
	}

	// Estudio with ID
	{
		r.OPTIONS("/:id", OptionsEstudioDetail)
		r.GET("/:id", GetEstudio)
		r.PATCH("/:id", UpdateEstudio)
		r.DELETE("/:id", DeleteEstudio)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Estudios
// @Success		204
// @Router			/v1/estudios [options]
func OptionsEstudioList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Estudios
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/estudios/{id} [options]
func OptionsEstudioDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Estudio{})
}

// replaceEstudioGroupers replaces the explicit memberships of an estudio.
func replaceEstudioGroupers(tx *gorm.DB, estudio models.Estudio, editable EstudioEditable) error {
	err := tx.Where(&models.EstudioGrouper{EstudioID: estudio.ID}).Delete(&models.EstudioGrouper{}).Error
	if err != nil {
		return err
	}

	for _, grouperID := range editable.GrouperIDs {
		err := tx.First(&models.Grouper{}, grouperID).Error
		if err != nil {
			return err
		}

		err = tx.Create(&models.EstudioGrouper{EstudioID: estudio.ID, GrouperID: grouperID}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// @Summary		Create estudio
// @Description	Creates a new estudio
// @Tags			Estudios
// @Produce		json
// @Success		201			{object}	EstudioCreateResponse
// @Failure		400			{object}	EstudioCreateResponse
// @Failure		404			{object}	EstudioCreateResponse
// @Failure		500			{object}	EstudioCreateResponse
// @Param			estudios	body		[]EstudioEditable	true	"Estudios"
// @Router			/v1/estudios [post]
func CreateEstudios(c *gin.Context) {
	var editables []EstudioEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EstudioCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EstudioCreateResponse{}

	for _, editable := range editables {
		estudio := editable.model()

		// The estudio and its memberships are saved together
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Create(&estudio).Error
			if err != nil {
				return err
			}

			return replaceEstudioGroupers(tx, estudio, editable)
		})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newEstudio(c, models.DB, estudio)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, EstudioResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get estudios
// @Description	Returns a list of estudios
// @Tags			Estudios
// @Produce		json
// @Success		200	{object}	EstudioListResponse
// @Failure		400	{object}	EstudioListResponse
// @Failure		500	{object}	EstudioListResponse
// @Router			/v1/estudios [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first Estudio returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Estudios to return. Defaults to 50."
func GetEstudios(c *gin.Context) {
	var filter EstudioQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioListResponse{
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

	// Default to 50 Estudios and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var estudios []models.Estudio
	err = q.Find(&estudios).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EstudioListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Estudio, 0)
	for _, estudio := range estudios {
		apiResource, err := newEstudio(c, models.DB, estudio)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), EstudioListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, EstudioListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get estudio
// @Description	Returns a specific estudio
// @Tags			Estudios
// @Produce		json
// @Success		200	{object}	EstudioResponse
// @Failure		400	{object}	EstudioResponse
// @Failure		404	{object}	EstudioResponse
// @Failure		500	{object}	EstudioResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/estudios/{id} [get]
func GetEstudio(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	var estudio models.Estudio
	err = models.DB.First(&estudio, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	data, err := newEstudio(c, models.DB, estudio)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EstudioResponse{Data: &data})
}

// @Summary		Update estudio
// @Description	Update an existing estudio. Only values to be updated need to be specified.
// @Tags			Estudios
// @Accept			json
// @Produce		json
// @Success		200		{object}	EstudioResponse
// @Failure		400		{object}	EstudioResponse
// @Failure		404		{object}	EstudioResponse
// @Failure		500		{object}	EstudioResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			estudio	body		EstudioEditable	true	"Estudio"
// @Router			/v1/estudios/{id} [patch]
func UpdateEstudio(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	var estudio models.Estudio
	err = models.DB.First(&estudio, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EstudioEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	var data EstudioEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	// Memberships are not a column, they are replaced separately
	replaceGroupers := slices.Contains(updateFields, any("GrouperIDs"))
	updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == any("GrouperIDs") })

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if len(updateFields) > 0 {
			err := tx.Model(&estudio).Select("", updateFields...).Updates(data.model()).Error
			if err != nil {
				return err
			}
		}

		if replaceGroupers {
			return replaceEstudioGroupers(tx, estudio, data)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	r, err := newEstudio(c, models.DB, estudio)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EstudioResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, EstudioResponse{Data: &r})
}

// @Summary		Delete estudio
// @Description	Deletes an estudio and its memberships
// @Tags			Estudios
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/estudios/{id} [delete]
func DeleteEstudio(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var estudio models.Estudio
	err = models.DB.First(&estudio, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.EstudioGrouper{EstudioID: estudio.ID}).Delete(&models.EstudioGrouper{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&estudio).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
