package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	hogar_uuid "github.com/hogar-budget/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	PeriodID      uuid.UUID            `json:"periodId" example:"d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"`               // ID of the period the expense belongs to
	CategoryID    uuid.UUID            `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`             // ID of the category of the expense
	Amount        decimal.Decimal      `json:"amount" example:"1450.50" minimum:"0.00000001" multipleOf:"0.00000001"` // Amount spent
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"efectivo"`                                      // Payment method, efectivo or credito
	Date          time.Time            `json:"date" example:"2026-03-14T00:00:00Z"`                                   // Date of the expense
	Note          string               `json:"note" example:"Supermercado" default:""`                                // Notes about the expense
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		PeriodID:      editable.PeriodID,
		CategoryID:    editable.CategoryID,
		Amount:        editable.Amount,
		PaymentMethod: editable.PaymentMethod,
		Date:          editable.Date,
		Note:          editable.Note,
	}
}

type ExpenseLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/expenses/3b1ea324-d438-4419-882a-2fc91d71772f"`       // The expense itself
	Period   string `json:"period" example:"https://example.com/api/v1/periods/d2525a4c-2982-4bc8-bcd4-e01aae7b1c0d"`      // The period of this expense
	Category string `json:"category" example:"https://example.com/api/v1/categories/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The category of this expense
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			PeriodID:      model.PeriodID,
			CategoryID:    model.CategoryID,
			Amount:        model.Amount,
			PaymentMethod: model.PaymentMethod,
			Date:          model.Date,
			Note:          model.Note,
		},
		Links: ExpenseLinks{
			Self:     fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
			Period:   fmt.Sprintf("%s/v1/periods/%s", url, model.PeriodID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of Expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created Expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the Expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	PeriodID      hogar_uuid.UUID `form:"period"`                        // By ID of the Period
	CategoryID    hogar_uuid.UUID `form:"category"`                      // By ID of the Category
	PaymentMethod string          `form:"paymentMethod"`                 // By payment method
	FromDate      time.Time       `form:"fromDate" filterField:"false"`  // Expenses at or after this date
	UntilDate     time.Time       `form:"untilDate" filterField:"false"` // Expenses at or before this date
	Note          string          `form:"note" filterField:"false"`      // By note
	Search        string          `form:"search" filterField:"false"`    // By string in note
	Offset        uint            `form:"offset" filterField:"false"`    // The offset of the first Expense returned. Defaults to 0.
	Limit         int             `form:"limit" filterField:"false"`     // Maximum number of Expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() (models.Expense, error) {
	return models.Expense{
		PeriodID:      f.PeriodID.UUID,
		CategoryID:    f.CategoryID.UUID,
		PaymentMethod: models.PaymentMethod(f.PaymentMethod),
	}, nil
}
