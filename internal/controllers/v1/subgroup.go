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

// RegisterSubgroupRoutes registers the routes for subgroups with
// the RouterGroup that is passed. Subgroup creation is nested under
// the simulation routes.
func RegisterSubgroupRoutes(r *gin.RouterGroup) {
	// Subgroup with ID
	{
		r.OPTIONS("/:id", OptionsSubgroupDetail)
		r.GET("/:id", GetSubgroup)
		r.PATCH("/:id", UpdateSubgroup)
		r.DELETE("/:id", DeleteSubgroup)
	}

	// Single member removal
	{
		r.OPTIONS("/:id/categories/:categoryId", OptionsSubgroupCategory)
		r.DELETE("/:id/categories/:categoryId", RemoveSubgroupCategory)
	}
}

// appendSubgroupCategories adds categories to a subgroup, continuing
// the stored position sequence.
func appendSubgroupCategories(tx *gorm.DB, subgroup models.Subgroup, categoryIDs []uuid.UUID) error {
	var members []models.SubgroupMembership
	err := tx.Where(&models.SubgroupMembership{SubgroupID: subgroup.ID}).Find(&members).Error
	if err != nil {
		return err
	}

	position := 0
	for _, member := range members {
		if member.Position >= position {
			position = member.Position + 1
		}
	}

	for _, categoryID := range categoryIDs {
		err := tx.Create(&models.SubgroupMembership{
			SimulationID: subgroup.SimulationID,
			SubgroupID:   subgroup.ID,
			CategoryID:   categoryID,
			Position:     position,
		}).Error
		if err != nil {
			return err
		}

		position++
	}

	return nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subgroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/subgroups [options]
func OptionsSimulationSubgroups(c *gin.Context) {
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

	httputil.OptionsGetPost(c)
}

// @Summary		Get subgroups
// @Description	Returns the subgroups of a simulation
// @Tags			Subgroups
// @Produce		json
// @Success		200	{object}	SubgroupListResponse
// @Failure		400	{object}	SubgroupListResponse
// @Failure		404	{object}	SubgroupListResponse
// @Failure		500	{object}	SubgroupListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/simulations/{id}/subgroups [get]
func GetSimulationSubgroups(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupListResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupListResponse{
			Error: &s,
		})
		return
	}

	subgroups, err := simulation.Subgroups(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Subgroup, 0)
	for _, subgroup := range subgroups {
		apiResource, err := newSubgroup(c, models.DB, subgroup)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SubgroupListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, SubgroupListResponse{Data: data})
}

// @Summary		Create subgroup
// @Description	Creates a new subgroup with its member categories. A subgroup cannot be created empty.
// @Tags			Subgroups
// @Accept			json
// @Produce		json
// @Success		201			{object}	SubgroupResponse
// @Failure		400			{object}	SubgroupResponse
// @Failure		404			{object}	SubgroupResponse
// @Failure		409			{object}	SubgroupResponse
// @Failure		500			{object}	SubgroupResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subgroup	body		SubgroupEditable	true	"Subgroup"
// @Router			/v1/simulations/{id}/subgroups [post]
func CreateSimulationSubgroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	var simulation models.Simulation
	err = models.DB.First(&simulation, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	var editable SubgroupEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	if len(editable.CategoryIDs) == 0 {
		s := errSubgroupCategoriesEmpty.Error()
		c.JSON(http.StatusBadRequest, SubgroupResponse{
			Error: &s,
		})
		return
	}

	subgroup := editable.model()
	subgroup.SimulationID = simulation.ID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&subgroup).Error
		if err != nil {
			return err
		}

		return appendSubgroupCategories(tx, subgroup, editable.CategoryIDs)
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	data, err := newSubgroup(c, models.DB, subgroup)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, SubgroupResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subgroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subgroups/{id} [options]
func OptionsSubgroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Subgroup{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get subgroup
// @Description	Returns a specific subgroup
// @Tags			Subgroups
// @Produce		json
// @Success		200	{object}	SubgroupResponse
// @Failure		400	{object}	SubgroupResponse
// @Failure		404	{object}	SubgroupResponse
// @Failure		500	{object}	SubgroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subgroups/{id} [get]
func GetSubgroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	var subgroup models.Subgroup
	err = models.DB.First(&subgroup, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	data, err := newSubgroup(c, models.DB, subgroup)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SubgroupResponse{Data: &data})
}

// @Summary		Update subgroup
// @Description	Renames a subgroup or adds categories to it. Categories in the body are added, existing members stay.
// @Tags			Subgroups
// @Accept			json
// @Produce		json
// @Success		200			{object}	SubgroupResponse
// @Failure		400			{object}	SubgroupResponse
// @Failure		404			{object}	SubgroupResponse
// @Failure		409			{object}	SubgroupResponse
// @Failure		500			{object}	SubgroupResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subgroup	body		SubgroupEditable	true	"Subgroup"
// @Router			/v1/subgroups/{id} [patch]
func UpdateSubgroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	var subgroup models.Subgroup
	err = models.DB.First(&subgroup, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubgroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	var data SubgroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	// Memberships are not a column, they are appended separately
	addCategories := slices.Contains(updateFields, any("CategoryIDs"))
	updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == any("CategoryIDs") })

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if len(updateFields) > 0 {
			err := tx.Model(&subgroup).Select("", updateFields...).Updates(data.model()).Error
			if err != nil {
				return err
			}
		}

		if addCategories {
			return appendSubgroupCategories(tx, subgroup, data.CategoryIDs)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	r, err := newSubgroup(c, models.DB, subgroup)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SubgroupResponse{Data: &r})
}

// @Summary		Delete subgroup
// @Description	Deletes a subgroup. Its members become ungrouped, they are not deleted.
// @Tags			Subgroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subgroups/{id} [delete]
func DeleteSubgroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var subgroup models.Subgroup
	err = models.DB.First(&subgroup, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.SubgroupMembership{SubgroupID: subgroup.ID}).Delete(&models.SubgroupMembership{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&subgroup).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subgroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			categoryId	path	string	true	"ID of the category"
// @Router			/v1/subgroups/{id}/categories/{categoryId} [options]
func OptionsSubgroupCategory(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Subgroup{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Remove subgroup member
// @Description	Removes a single category from a subgroup
// @Tags			Subgroups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id			path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			categoryId	path	string	true	"ID of the category"
// @Router			/v1/subgroups/{id}/categories/{categoryId} [delete]
func RemoveSubgroupCategory(c *gin.Context) {
	var uri URICategory
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var subgroup models.Subgroup
	err = models.DB.First(&subgroup, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var membership models.SubgroupMembership
	err = models.DB.Where(&models.SubgroupMembership{
		SubgroupID: subgroup.ID,
		CategoryID: uri.CategoryID.UUID,
	}).First(&membership).Error
	if err != nil {
		s := errNotASubgroupMember.Error()
		c.JSON(http.StatusNotFound, httpError{
			Error: s,
		})
		return
	}

	err = models.DB.Where(&models.SubgroupMembership{
		SubgroupID: subgroup.ID,
		CategoryID: uri.CategoryID.UUID,
	}).Delete(&models.SubgroupMembership{}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
