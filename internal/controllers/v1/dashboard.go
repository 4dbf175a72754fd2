package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/models"
	hogar_uuid "github.com/hogar-budget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)

	r.OPTIONS("/weekly", OptionsDashboard)
	r.GET("/weekly", GetWeeklyDashboard)
}

// DashboardQuery are the query parameters of the dashboard endpoints.
type DashboardQuery struct {
	Period     hogar_uuid.UUID `form:"period"`     // ID of the period, required
	Estudio    hogar_uuid.UUID `form:"estudio"`    // Restrict the groupers to an estudio
	Projection bool            `form:"projection"` // Show budgeted amounts instead of actuals
}

// DashboardCategory is the per-category aggregate of the dashboard.
type DashboardCategory struct {
	ID        uuid.UUID       `json:"id" example:"e6d24d23-a93e-4a42-a802-5720d3b40f45"`
	Name      string          `json:"name" example:"Supermercado"`
	TipoGasto string          `json:"tipoGasto" example:"Variable"`
	Efectivo  decimal.Decimal `json:"efectivo" example:"180.50"`
	Credito   decimal.Decimal `json:"credito" example:"99.99"`
}

// DashboardGrouper is the per-grouper aggregate of the dashboard.
type DashboardGrouper struct {
	ID         uuid.UUID           `json:"id" example:"cf3301cd-e599-4664-96b6-75e9ea26343f"`
	Name       string              `json:"name" example:"Hogar"`
	Efectivo   decimal.Decimal     `json:"efectivo" example:"540.30"`
	Credito    decimal.Decimal     `json:"credito" example:"120.00"`
	Categories []DashboardCategory `json:"categories"`
}

// Dashboard is the full aggregate for one period.
type Dashboard struct {
	PeriodID   uuid.UUID          `json:"periodId" example:"d2a61a0b-8f58-48a7-bcaf-044a02d2268a"`
	Projection bool               `json:"projection" example:"false"` // Whether the amounts are budgets instead of actuals
	Efectivo   decimal.Decimal    `json:"efectivo" example:"660.30"`
	Credito    decimal.Decimal    `json:"credito" example:"219.99"`
	Groupers   []DashboardGrouper `json:"groupers"`
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`
	Error *string    `json:"error" example:"the period query parameter must be set"`
}

// WeeklyBucket is the expense total of one week of a period.
type WeeklyBucket struct {
	Week     int             `json:"week" example:"2"` // 1-based week of the month
	Efectivo decimal.Decimal `json:"efectivo" example:"120.00"`
	Credito  decimal.Decimal `json:"credito" example:"45.50"`
}

type WeeklyDashboardResponse struct {
	Data  []WeeklyBucket `json:"data"`
	Error *string        `json:"error" example:"the period query parameter must be set"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// dashboardAmounts sums the period's amounts per category and payment
// method. With projection set, budgets are summed instead of expenses.
func dashboardAmounts(period models.Period, projection bool) (map[uuid.UUID]map[models.PaymentMethod]decimal.Decimal, error) {
	amounts := make(map[uuid.UUID]map[models.PaymentMethod]decimal.Decimal)

	add := func(categoryID uuid.UUID, method models.PaymentMethod, amount decimal.Decimal) {
		if _, ok := amounts[categoryID]; !ok {
			amounts[categoryID] = map[models.PaymentMethod]decimal.Decimal{
				models.PaymentMethodEfectivo: decimal.Zero,
				models.PaymentMethodCredito:  decimal.Zero,
			}
		}
		amounts[categoryID][method] = amounts[categoryID][method].Add(amount)
	}

	if projection {
		var budgets []models.Budget
		err := models.DB.Where(&models.Budget{PeriodID: period.ID}).Find(&budgets).Error
		if err != nil {
			return nil, err
		}

		for _, budget := range budgets {
			add(budget.CategoryID, budget.PaymentMethod, budget.Amount)
		}
		return amounts, nil
	}

	var expenses []models.Expense
	err := models.DB.Where(&models.Expense{PeriodID: period.ID}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	for _, expense := range expenses {
		add(expense.CategoryID, expense.PaymentMethod, expense.Amount)
	}
	return amounts, nil
}

// dashboardGroupers returns the groupers in scope for the request,
// either all of them or the ones an estudio resolves to.
func dashboardGroupers(query DashboardQuery) ([]models.Grouper, error) {
	if query.Estudio != hogar_uuid.Nil {
		var estudio models.Estudio
		err := models.DB.First(&estudio, query.Estudio).Error
		if err != nil {
			return nil, err
		}

		return estudio.Groupers(models.DB)
	}

	var groupers []models.Grouper
	err := models.DB.Order("name ASC").Find(&groupers).Error
	if err != nil {
		return nil, err
	}

	return groupers, nil
}

// @Summary		Get dashboard
// @Description	Returns per-grouper and per-category totals for a period. With projection set, budgeted amounts are returned instead of actual expenses.
// @Tags			Dashboard
// @Produce		json
// @Success		200			{object}	DashboardResponse
// @Failure		400			{object}	DashboardResponse
// @Failure		404			{object}	DashboardResponse
// @Failure		500			{object}	DashboardResponse
// @Param			period		query		string	true	"ID of the period"
// @Param			estudio		query		string	false	"Restrict the groupers to an estudio"
// @Param			projection	query		bool	false	"Show budgeted amounts instead of actuals"
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	if query.Period == hogar_uuid.Nil {
		s := errPeriodNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	var period models.Period
	err := models.DB.First(&period, query.Period).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	groupers, err := dashboardGroupers(query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	amounts, err := dashboardAmounts(period, query.Projection)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	dashboard := Dashboard{
		PeriodID:   period.ID,
		Projection: query.Projection,
		Efectivo:   decimal.Zero,
		Credito:    decimal.Zero,
		Groupers:   make([]DashboardGrouper, 0, len(groupers)),
	}

	for _, grouper := range groupers {
		categories, err := grouper.Categories(models.DB)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardResponse{
				Error: &s,
			})
			return
		}

		aggregate := DashboardGrouper{
			ID:         grouper.ID,
			Name:       grouper.Name,
			Efectivo:   decimal.Zero,
			Credito:    decimal.Zero,
			Categories: make([]DashboardCategory, 0, len(categories)),
		}

		for _, category := range categories {
			entry := DashboardCategory{
				ID:        category.ID,
				Name:      category.Name,
				TipoGasto: category.TipoGasto,
				Efectivo:  amounts[category.ID][models.PaymentMethodEfectivo],
				Credito:   amounts[category.ID][models.PaymentMethodCredito],
			}

			aggregate.Efectivo = aggregate.Efectivo.Add(entry.Efectivo)
			aggregate.Credito = aggregate.Credito.Add(entry.Credito)
			aggregate.Categories = append(aggregate.Categories, entry)
		}

		dashboard.Efectivo = dashboard.Efectivo.Add(aggregate.Efectivo)
		dashboard.Credito = dashboard.Credito.Add(aggregate.Credito)
		dashboard.Groupers = append(dashboard.Groupers, aggregate)
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}

// @Summary		Get weekly dashboard
// @Description	Returns the expenses of a period bucketed into the weeks of its month
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	WeeklyDashboardResponse
// @Failure		400		{object}	WeeklyDashboardResponse
// @Failure		404		{object}	WeeklyDashboardResponse
// @Failure		500		{object}	WeeklyDashboardResponse
// @Param			period	query		string	true	"ID of the period"
// @Router			/v1/dashboard/weekly [get]
func GetWeeklyDashboard(c *gin.Context) {
	var query DashboardQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, WeeklyDashboardResponse{
			Error: &s,
		})
		return
	}

	if query.Period == hogar_uuid.Nil {
		s := errPeriodNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, WeeklyDashboardResponse{
			Error: &s,
		})
		return
	}

	var period models.Period
	err := models.DB.First(&period, query.Period).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeeklyDashboardResponse{
			Error: &s,
		})
		return
	}

	var expenses []models.Expense
	err = models.DB.Where(&models.Expense{PeriodID: period.ID}).Find(&expenses).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), WeeklyDashboardResponse{
			Error: &s,
		})
		return
	}

	buckets := make([]WeeklyBucket, period.Month.Weeks())
	for i := range buckets {
		buckets[i] = WeeklyBucket{
			Week:     i + 1,
			Efectivo: decimal.Zero,
			Credito:  decimal.Zero,
		}
	}

	for _, expense := range expenses {
		// Expenses dated outside the period's month land in its
		// closest week instead of being dropped.
		week := period.Month.WeekOf(expense.Date)
		if week < 0 {
			week = 0
		}
		if week >= len(buckets) {
			week = len(buckets) - 1
		}

		switch expense.PaymentMethod {
		case models.PaymentMethodEfectivo:
			buckets[week].Efectivo = buckets[week].Efectivo.Add(expense.Amount)
		case models.PaymentMethodCredito:
			buckets[week].Credito = buckets[week].Credito.Add(expense.Amount)
		}
	}

	c.JSON(http.StatusOK, WeeklyDashboardResponse{Data: buckets})
}
