package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogar-budget/backend/internal/httputil"
	"github.com/hogar-budget/backend/internal/rates"
	"github.com/shopspring/decimal"
)

// RegisterRateRoutes registers the routes for the rate calculator with
// the RouterGroup that is passed.
func RegisterRateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsRates)
	r.GET("", GetRates)
}

// RateQuery are the query parameters of the rate conversion.
type RateQuery struct {
	Rate           decimal.Decimal `form:"rate"`           // The rate as a decimal fraction, 0.05 means 5%
	From           string          `form:"from"`           // Representation the rate is given in
	To             string          `form:"to"`             // Representation to convert to
	PeriodsPerYear int             `form:"periodsPerYear"` // Compounding periods per year. Defaults to 12.
}

// RateConversion is the result of a rate conversion.
type RateConversion struct {
	Rate           decimal.Decimal `json:"rate" example:"0.05"` // The input rate
	From           string          `json:"from" example:"nominal-annual"`
	To             string          `json:"to" example:"effective-annual"`
	PeriodsPerYear int             `json:"periodsPerYear" example:"12"`
	Result         decimal.Decimal `json:"result" example:"0.05116190"` // The converted rate
}

type RateResponse struct {
	Data  *RateConversion `json:"data"`
	Error *string         `json:"error" example:"the rate kind must be effective-annual, nominal-annual or effective-periodic"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Rates
// @Success		204
// @Router			/v1/rates [options]
func OptionsRates(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Convert rate
// @Description	Converts an interest rate between its effective annual, nominal annual and effective periodic representations
// @Tags			Rates
// @Produce		json
// @Success		200				{object}	RateResponse
// @Failure		400				{object}	RateResponse
// @Param			rate			query		string	true	"The rate as a decimal fraction, 0.05 means 5%"
// @Param			from			query		string	true	"Representation the rate is given in"
// @Param			to				query		string	true	"Representation to convert to"
// @Param			periodsPerYear	query		int		false	"Compounding periods per year. Defaults to 12."
// @Router			/v1/rates [get]
func GetRates(c *gin.Context) {
	var query RateQuery
	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RateResponse{
			Error: &s,
		})
		return
	}

	if query.PeriodsPerYear == 0 {
		query.PeriodsPerYear = 12
	}

	result, err := rates.Convert(query.Rate, rates.Kind(query.From), rates.Kind(query.To), query.PeriodsPerYear)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, RateResponse{
		Data: &RateConversion{
			Rate:           query.Rate,
			From:           query.From,
			To:             query.To,
			PeriodsPerYear: query.PeriodsPerYear,
			Result:         result,
		},
	})
}
