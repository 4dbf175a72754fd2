package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestExpensePaymentMethod() {
	period := suite.createTestPeriod(models.Period{})
	category := suite.createTestCategory(models.Category{})

	tests := []struct {
		method models.PaymentMethod
		err    error
	}{
		{models.PaymentMethodEfectivo, nil},
		{models.PaymentMethodCredito, nil},
		{"cheque", models.ErrPaymentMethodInvalid},
		{"", models.ErrPaymentMethodInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(string(tt.method), func(t *testing.T) {
			expense := models.Expense{
				PeriodID:      period.ID,
				CategoryID:    category.ID,
				PaymentMethod: tt.method,
				Amount:        decimal.NewFromFloat(10),
			}

			err := models.DB.Create(&expense).Error
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrExpenseAmountNotPositive},
		{decimal.Zero, models.ErrExpenseAmountNotPositive},
		{decimal.NewFromFloat(750), nil},
	}

	for _, tt := range tests {
		e := models.Expense{
			Amount: tt.amount,
		}

		err := e.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestExpenseReferencesMustExist() {
	period := suite.createTestPeriod(models.Period{})

	expense := models.Expense{
		PeriodID:      period.ID,
		CategoryID:    uuid.New(),
		PaymentMethod: models.PaymentMethodEfectivo,
		Amount:        decimal.NewFromFloat(10),
	}

	err := models.DB.Create(&expense).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
