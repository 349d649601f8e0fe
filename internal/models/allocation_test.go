package models_test

import (
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestUpsertAllocationOverwrites() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})
	month := types.NewMonth(2025, 11)

	first := suite.createTestAllocation(owner, category.ID, month, "100")
	second := suite.createTestAllocation(owner, category.ID, month, "25.5")

	suite.Assert().Equal(first.ID, second.ID)
	suite.assertDecimal("25.5", second.Budgeted)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.BudgetAllocation{}).Where("owner_id = ?", owner).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestAllocationNotUnique() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})
	allocation := suite.createTestAllocation(owner, category.ID, types.NewMonth(2025, 11), "10")

	err := models.DB.Create(&models.BudgetAllocation{
		OwnerID:       owner,
		BudgetMonthID: allocation.BudgetMonthID,
		CategoryID:    category.ID,
		Budgeted:      decimal.NewFromFloat(20),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrAllocationNotUnique)
}

func (suite *TestSuiteStandard) TestAllocationsForMonth() {
	owner := suite.createTestOwner()
	rent := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Rent"})
	food := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Food"})

	_ = suite.createTestAllocation(owner, rent.ID, types.NewMonth(2025, 10), "800")
	november := suite.createTestAllocation(owner, rent.ID, types.NewMonth(2025, 11), "850")
	_ = suite.createTestAllocation(owner, food.ID, types.NewMonth(2025, 12), "300")

	allocations, err := models.AllocationsForMonth(models.DB, owner, types.NewMonth(2025, 11))
	suite.Require().Nil(err)
	suite.Require().Len(allocations, 1)
	suite.Assert().Equal(november.ID, allocations[rent.ID].ID)
	suite.assertDecimal("850", allocations[rent.ID].Budgeted)

	_, err = models.AllocationsForMonth(models.DB, uuid.Nil, types.NewMonth(2025, 11))
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)
}
