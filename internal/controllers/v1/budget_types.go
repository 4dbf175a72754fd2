package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	hogar_uuid "github.com/hogar-budget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	PeriodID      uuid.UUID            `json:"periodId" example:"d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"`   // ID of the period the budget belongs to
	CategoryID    uuid.UUID            `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category the budget is for
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"efectivo"`                          // Payment method, efectivo or credito
	Amount        decimal.Decimal      `json:"amount" example:"3000" minimum:"0" multipleOf:"0.00000001"` // Planned amount
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		PeriodID:      editable.PeriodID,
		CategoryID:    editable.CategoryID,
		PaymentMethod: editable.PaymentMethod,
		Amount:        editable.Amount,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/3b1ea324-d438-4419-882a-2fc91d71772f"`        // The budget itself
	Period   string `json:"period" example:"https://example.com/api/v1/periods/d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"`      // The period of this budget
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The category of this budget
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			PeriodID:      model.PeriodID,
			CategoryID:    model.CategoryID,
			PaymentMethod: model.PaymentMethod,
			Amount:        model.Amount,
		},
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Period:   fmt.Sprintf("%s/v1/periods/%s", url, model.PeriodID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	PeriodID      hogar_uuid.UUID `form:"period"`                     // By ID of the Period
	CategoryID    hogar_uuid.UUID `form:"category"`                   // By ID of the Category
	PaymentMethod string          `form:"paymentMethod"`              // By payment method
	Offset        uint            `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit         int             `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() (models.Budget, error) {
	return models.Budget{
		PeriodID:      f.PeriodID.UUID,
		CategoryID:    f.CategoryID.UUID,
		PaymentMethod: models.PaymentMethod(f.PaymentMethod),
	}, nil
}
