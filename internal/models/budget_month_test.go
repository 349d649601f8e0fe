package models_test

import (
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestEnsureBudgetMonthIdempotent() {
	owner := suite.createTestOwner()
	month := types.NewMonth(2025, 11)

	first, err := models.EnsureBudgetMonth(models.DB, owner, month)
	suite.Require().Nil(err)
	suite.Assert().True(month.Equal(first.Month), "expected %s, got %s", month, first.Month)

	second, err := models.EnsureBudgetMonth(models.DB, owner, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.BudgetMonth{}).Where("owner_id = ?", owner).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestEnsureBudgetMonthPerOwner() {
	month := types.NewMonth(2025, 11)

	a, err := models.EnsureBudgetMonth(models.DB, suite.createTestOwner(), month)
	suite.Require().Nil(err)

	b, err := models.EnsureBudgetMonth(models.DB, suite.createTestOwner(), month)
	suite.Require().Nil(err)

	suite.Assert().NotEqual(a.ID, b.ID)
}

func (suite *TestSuiteStandard) TestEnsureBudgetMonthOwnerMissing() {
	_, err := models.EnsureBudgetMonth(models.DB, uuid.Nil, types.NewMonth(2025, 11))
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)
}
