package models_test

import (
	"github.com/google/uuid"
	"github.com/hogar-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestSimulationNameNotUnique() {
	_ = suite.createTestSimulation(models.Simulation{Name: "Escenario base"})

	simulation := models.Simulation{Name: "Escenario base"}
	err := models.DB.Create(&simulation).Error

	assert.ErrorIs(suite.T(), err, models.ErrSimulationNameNotUnique)
}

func (suite *TestSuiteStandard) TestSimulationPeriodMustExist() {
	id := uuid.New()
	simulation := models.Simulation{
		Name:     "Escenario",
		PeriodID: &id,
	}

	err := models.DB.Create(&simulation).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestSimulationWithoutPeriod() {
	simulation := models.Simulation{
		Name:        "Sin periodo",
		TotalIncome: decimal.NewFromFloat(2500),
	}

	err := models.DB.Create(&simulation).Error
	require.Nil(suite.T(), err)
	assert.Nil(suite.T(), simulation.PeriodID)
}

func (suite *TestSuiteStandard) TestSimulationSubgroupsOrdered() {
	simulation := suite.createTestSimulation(models.Simulation{})

	_ = suite.createTestSubgroup(models.Subgroup{SimulationID: simulation.ID, Name: "Zapatos"})
	_ = suite.createTestSubgroup(models.Subgroup{SimulationID: simulation.ID, Name: "Ahorros"})

	subgroups, err := simulation.Subgroups(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), subgroups, 2)
	assert.Equal(suite.T(), "Ahorros", subgroups[0].Name)
	assert.Equal(suite.T(), "Zapatos", subgroups[1].Name)
}

func (suite *TestSuiteStandard) TestSimulationBudgetAfterSave() {
	tests := []struct {
		name   string
		budget models.SimulationBudget
		err    error
	}{
		{
			"negative amount",
			models.SimulationBudget{Efectivo: decimal.NewFromFloat(-1)},
			models.ErrSimulationBudgetAmountNegative,
		},
		{
			"ahorro exceeds efectivo",
			models.SimulationBudget{
				Efectivo:       decimal.NewFromFloat(10),
				AhorroEfectivo: decimal.NewFromFloat(20),
			},
			models.ErrAhorroExceedsAmount,
		},
		{
			"ahorro exceeds credito",
			models.SimulationBudget{
				Credito:       decimal.NewFromFloat(10),
				AhorroCredito: decimal.NewFromFloat(20),
			},
			models.ErrAhorroExceedsAmount,
		},
		{
			"valid",
			models.SimulationBudget{
				Efectivo:       decimal.NewFromFloat(100),
				Credito:        decimal.NewFromFloat(50),
				AhorroEfectivo: decimal.NewFromFloat(30),
				AhorroCredito:  decimal.NewFromFloat(50),
			},
			nil,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.budget.AfterSave(&gorm.DB{})
			assert.Equal(suite.T(), tt.err, err)
		})
	}
}

func (suite *TestSuiteStandard) TestSimulationBudgetNotUnique() {
	budget := suite.createTestSimulationBudget(models.SimulationBudget{})

	duplicate := models.SimulationBudget{
		SimulationID: budget.SimulationID,
		CategoryID:   budget.CategoryID,
	}

	err := models.DB.Create(&duplicate).Error
	assert.ErrorIs(suite.T(), err, models.ErrSimulationBudgetNotUnique)
}
