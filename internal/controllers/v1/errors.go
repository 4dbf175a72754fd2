package v1

import (
	"errors"
	"net/http"

	"github.com/hogar-budget/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrPeriodNameNotUnique) ||
		errors.Is(err, models.ErrGrouperNameNotUnique) ||
		errors.Is(err, models.ErrCategoryNameNotUnique) ||
		errors.Is(err, models.ErrEstudioNameNotUnique) ||
		errors.Is(err, models.ErrBudgetNotUnique) ||
		errors.Is(err, models.ErrSimulationNameNotUnique) ||
		errors.Is(err, models.ErrSimulationBudgetNotUnique) ||
		errors.Is(err, models.ErrSubgroupNameNotUnique) ||
		errors.Is(err, models.ErrCategoryAlreadyGrouped) ||
		errors.Is(err, models.ErrTemplateNameNotUnique) ||
		errors.Is(err, models.ErrTemplateEntryNotUnique) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Subgroup errors
var (
	errSubgroupCategoriesEmpty = errors.New("a subgroup must contain at least one category")
	errNotASubgroupMember      = errors.New("the category is not a member of this subgroup")
)

// Dashboard errors
var (
	errPeriodNotSetInQuery = errors.New("the period query parameter must be set")
)
