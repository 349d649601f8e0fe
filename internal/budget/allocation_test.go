package budget_test

import (
	"time"

	"github.com/envelope-zero/tracker/internal/budget"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
)

// TestWriteAllocationUpsert verifies that writing twice leaves exactly one
// allocation with the latest amount.
func (suite *TestSuiteStandard) TestWriteAllocationUpsert() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})

	first, err := budget.WriteAllocation(models.DB, owner, category.ID, "2025-11", "100")
	suite.Require().Nil(err)
	suite.assertMoney("100.00", first.Budgeted)

	second, err := budget.WriteAllocation(models.DB, owner, category.ID, "2025-11", "1,250.5")
	suite.Require().Nil(err)
	suite.assertMoney("1250.50", second.Budgeted)
	suite.Assert().Equal(first.ID, second.ID)

	var allocations []models.BudgetAllocation
	suite.Require().Nil(models.DB.Where("owner_id = ?", owner).Find(&allocations).Error)
	suite.Require().Len(allocations, 1)
	suite.assertMoney("1250.50", allocations[0].Budgeted)

	sum, err := models.SumBudgeted(models.DB, owner, models.AllocationFilter{Month: types.NewMonth(2025, time.November)})
	suite.Require().Nil(err)
	suite.assertMoney("1250.50", sum)
}

func (suite *TestSuiteStandard) TestWriteAllocationDegradation() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})

	allocation, err := budget.WriteAllocation(models.DB, owner, category.ID, "not-a-month", "abc")
	suite.Require().Nil(err)
	suite.assertMoney("0.00", allocation.Budgeted)

	var budgetMonth models.BudgetMonth
	suite.Require().Nil(models.DB.First(&budgetMonth, "id = ?", allocation.BudgetMonthID).Error)

	// The month falls back to the current month
	current := types.MonthOf(time.Now())
	suite.Assert().True(current.Equal(budgetMonth.Month), "expected %s, got %s", current, budgetMonth.Month)
}

func (suite *TestSuiteStandard) TestWriteAllocationRounding() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})

	allocation, err := budget.WriteAllocation(models.DB, owner, category.ID, "2025-11", " 1.005 ")
	suite.Require().Nil(err)
	suite.assertMoney("1.01", allocation.Budgeted)
}

// TestWriteAllocationForeignCategory verifies that nothing is written when
// the category belongs to another owner.
func (suite *TestSuiteStandard) TestWriteAllocationForeignCategory() {
	owner := suite.createTestOwner()
	foreign := suite.createTestCategory(models.Category{OwnerID: suite.createTestOwner()})

	_, err := budget.WriteAllocation(models.DB, owner, foreign.ID, "2025-11", "100")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = budget.WriteAllocation(models.DB, owner, uuid.New(), "2025-11", "100")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	for _, model := range []interface{}{&models.BudgetMonth{}, &models.BudgetAllocation{}} {
		var count int64
		suite.Require().Nil(models.DB.Model(model).Where("owner_id = ?", owner).Count(&count).Error)
		suite.Assert().Equal(int64(0), count, "%T was written", model)
	}
}

func (suite *TestSuiteStandard) TestWriteAllocationOwnerMissing() {
	_, err := budget.WriteAllocation(models.DB, uuid.Nil, uuid.New(), "2025-11", "100")
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)
}

func (suite *TestSuiteStandard) TestWriteAllocationMonthsAreSeparate() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})

	october := suite.createTestAllocation(owner, category.ID, "2025-10", "10")
	november := suite.createTestAllocation(owner, category.ID, "2025-11", "20")

	suite.Assert().NotEqual(october.ID, november.ID)
	suite.Assert().NotEqual(october.BudgetMonthID, november.BudgetMonthID)
}

func (suite *TestSuiteStandard) TestWriteAllocationDatabaseError() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})
	suite.CloseDB()

	_, err := budget.WriteAllocation(models.DB, owner, category.ID, "2025-11", "10")
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
