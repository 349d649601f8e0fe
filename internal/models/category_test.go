package models_test

import (
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner, Name: " Groceries\n"})
	suite.Assert().Equal("Groceries", category.Name)
}

func (suite *TestSuiteStandard) TestCategoryForeignGroup() {
	owner := suite.createTestOwner()
	foreignGroup := suite.createTestCategoryGroup(models.CategoryGroup{OwnerID: suite.createTestOwner()})

	err := models.DB.Create(&models.Category{OwnerID: owner, CategoryGroupID: foreignGroup.ID, Name: "Rent"}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCategoryForOwner() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Rent"})

	found, err := models.CategoryForOwner(models.DB, owner, category.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Rent", found.Name)

	_, err = models.CategoryForOwner(models.DB, suite.createTestOwner(), category.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

// TestCategoryDelete verifies that transactions are kept without a category
// and allocations are removed when the category is deleted.
func (suite *TestSuiteStandard) TestCategoryDelete() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})
	transaction := suite.createTestTransaction(models.Transaction{OwnerID: owner, CategoryID: &category.ID, Amount: decimal.NewFromFloat(-20)})
	_ = suite.createTestAllocation(owner, category.ID, types.NewMonth(2025, 11), "50")

	suite.Require().Nil(models.DB.Delete(&category).Error)

	var reloaded models.Transaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", transaction.ID).Error)
	suite.Assert().Nil(reloaded.CategoryID)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.BudgetAllocation{}).Where("owner_id = ?", owner).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestCategoryGroupDeleteCascades() {
	owner := suite.createTestOwner()
	group := suite.createTestCategoryGroup(models.CategoryGroup{OwnerID: owner})
	_ = suite.createTestCategory(models.Category{OwnerID: owner, CategoryGroupID: group.ID})

	suite.Require().Nil(models.DB.Delete(&group).Error)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Category{}).Where("owner_id = ?", owner).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
