package models_test

import (
	"github.com/hogar-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestBudgetNotUnique() {
	period := suite.createTestPeriod(models.Period{})
	category := suite.createTestCategory(models.Category{})

	_ = suite.createTestBudget(models.Budget{
		PeriodID:      period.ID,
		CategoryID:    category.ID,
		PaymentMethod: models.PaymentMethodEfectivo,
	})

	// The same category with the other payment method is fine
	_ = suite.createTestBudget(models.Budget{
		PeriodID:      period.ID,
		CategoryID:    category.ID,
		PaymentMethod: models.PaymentMethodCredito,
	})

	budget := models.Budget{
		PeriodID:      period.ID,
		CategoryID:    category.ID,
		PaymentMethod: models.PaymentMethodEfectivo,
	}
	err := models.DB.Create(&budget).Error
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrBudgetAmountNegative},
		{decimal.Zero, nil},
		{decimal.NewFromFloat(750), nil},
	}

	for _, tt := range tests {
		b := models.Budget{
			Amount: tt.amount,
		}

		err := b.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}
