package models_test

import (
	"time"

	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestLedgerZeroRows() {
	owner := suite.createTestOwner()
	category := suite.createTestCategory(models.Category{OwnerID: owner})

	sum, err := models.SumTransactions(models.DB, owner, models.TransactionFilter{CategoryID: &category.ID})
	suite.Require().Nil(err)
	suite.assertDecimal("0", sum)

	sum, err = models.SumBudgeted(models.DB, owner, models.AllocationFilter{CategoryID: &category.ID, Month: types.NewMonth(2025, 11)})
	suite.Require().Nil(err)
	suite.assertDecimal("0", sum)

	sum, err = models.SumAccountBalances(models.DB, owner, true)
	suite.Require().Nil(err)
	suite.assertDecimal("0", sum)

	byCategory, err := models.SumTransactionsByCategory(models.DB, owner, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(byCategory, 0)

	byCategory, err = models.SumBudgetedByCategory(models.DB, owner, models.AllocationFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(byCategory, 0)
}

func (suite *TestSuiteStandard) TestLedgerOwnerMissing() {
	_, err := models.SumTransactions(models.DB, uuid.Nil, models.TransactionFilter{})
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)

	_, err = models.SumTransactionsByCategory(models.DB, uuid.Nil, models.TransactionFilter{})
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)

	_, err = models.SumBudgeted(models.DB, uuid.Nil, models.AllocationFilter{})
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)

	_, err = models.SumBudgetedByCategory(models.DB, uuid.Nil, models.AllocationFilter{})
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)

	_, err = models.SumAccountBalances(models.DB, uuid.Nil, false)
	suite.Assert().ErrorIs(err, models.ErrOwnerMissing)
}

// TestLedgerHalfOpenRange verifies that From is inclusive and Until is exclusive.
func (suite *TestSuiteStandard) TestLedgerHalfOpenRange() {
	owner := suite.createTestOwner()
	account := suite.createTestAccount(models.Account{OwnerID: owner})

	for _, t := range []struct {
		date   time.Time
		amount float64
	}{
		{date(2025, time.September, 30), -1},
		{date(2025, time.October, 1), -2},
		{date(2025, time.October, 31), -4},
		{date(2025, time.November, 1), -8},
	} {
		_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, AccountID: account.ID, Date: t.date, Amount: decimal.NewFromFloat(t.amount)})
	}

	october := types.NewMonth(2025, time.October)

	tests := []struct {
		name   string
		filter models.TransactionFilter
		want   string
	}{
		{"Month", models.TransactionFilter{From: october.Time(), Until: october.Next().Time()}, "-6"},
		{"Before month", models.TransactionFilter{Until: october.Time()}, "-1"},
		{"From month", models.TransactionFilter{From: october.Time()}, "-14"},
		{"Unbounded", models.TransactionFilter{}, "-15"},
		{"Account", models.TransactionFilter{AccountID: &account.ID, From: october.Next().Time()}, "-8"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			sum, err := models.SumTransactions(models.DB, owner, tt.filter)
			suite.Require().Nil(err)
			suite.assertDecimal(tt.want, sum)
		})
	}
}

func (suite *TestSuiteStandard) TestLedgerSign() {
	owner := suite.createTestOwner()

	for _, amount := range []float64{1500, -200, 250.5, -49.5} {
		_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, Amount: decimal.NewFromFloat(amount)})
	}

	positive, err := models.SumTransactions(models.DB, owner, models.TransactionFilter{Sign: models.SignPositive})
	suite.Require().Nil(err)
	suite.assertDecimal("1750.5", positive)

	negative, err := models.SumTransactions(models.DB, owner, models.TransactionFilter{Sign: models.SignNegative})
	suite.Require().Nil(err)
	suite.assertDecimal("-249.5", negative)

	total, err := models.SumTransactions(models.DB, owner, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.assertDecimal("1501", total)
}

func (suite *TestSuiteStandard) TestLedgerByCategory() {
	owner := suite.createTestOwner()
	rent := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Rent"})
	food := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Food"})
	unused := suite.createTestCategory(models.Category{OwnerID: owner, Name: "Unused"})

	_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, CategoryID: &rent.ID, Amount: decimal.NewFromFloat(-800)})
	_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, CategoryID: &food.ID, Amount: decimal.NewFromFloat(-30)})
	_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, CategoryID: &food.ID, Amount: decimal.NewFromFloat(-12.5)})
	_ = suite.createTestTransaction(models.Transaction{OwnerID: owner, Amount: decimal.NewFromFloat(2000)})

	sums, err := models.SumTransactionsByCategory(models.DB, owner, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(sums, 2)
	suite.assertDecimal("-800", sums[rent.ID])
	suite.assertDecimal("-42.5", sums[food.ID])

	_, ok := sums[unused.ID]
	suite.Assert().False(ok, "Categories without transactions must not be part of the result")
}

func (suite *TestSuiteStandard) TestLedgerBudgeted() {
	owner := suite.createTestOwner()
	rent := suite.createTestCategory(models.Category{OwnerID: owner})
	food := suite.createTestCategory(models.Category{OwnerID: owner})

	_ = suite.createTestAllocation(owner, rent.ID, types.NewMonth(2025, 9), "800")
	_ = suite.createTestAllocation(owner, rent.ID, types.NewMonth(2025, 10), "850")
	_ = suite.createTestAllocation(owner, food.ID, types.NewMonth(2025, 10), "300")
	_ = suite.createTestAllocation(owner, food.ID, types.NewMonth(2025, 11), "250")

	october := types.NewMonth(2025, 10)

	sum, err := models.SumBudgeted(models.DB, owner, models.AllocationFilter{Month: october})
	suite.Require().Nil(err)
	suite.assertDecimal("1150", sum)

	sum, err = models.SumBudgeted(models.DB, owner, models.AllocationFilter{Before: october})
	suite.Require().Nil(err)
	suite.assertDecimal("800", sum)

	sum, err = models.SumBudgeted(models.DB, owner, models.AllocationFilter{CategoryID: &food.ID})
	suite.Require().Nil(err)
	suite.assertDecimal("550", sum)

	sums, err := models.SumBudgetedByCategory(models.DB, owner, models.AllocationFilter{Before: october.Next()})
	suite.Require().Nil(err)
	suite.assertDecimal("1650", sums[rent.ID])
	suite.assertDecimal("300", sums[food.ID])
}

func (suite *TestSuiteStandard) TestLedgerAccountBalances() {
	owner := suite.createTestOwner()
	_ = suite.createTestAccount(models.Account{OwnerID: owner, OnBudget: true, Balance: decimal.NewFromFloat(1000.25)})
	_ = suite.createTestAccount(models.Account{OwnerID: owner, OnBudget: true, Balance: decimal.NewFromFloat(-200)})
	_ = suite.createTestAccount(models.Account{OwnerID: owner, OnBudget: false, Balance: decimal.NewFromFloat(5000)})

	onBudget, err := models.SumAccountBalances(models.DB, owner, true)
	suite.Require().Nil(err)
	suite.assertDecimal("800.25", onBudget)

	all, err := models.SumAccountBalances(models.DB, owner, false)
	suite.Require().Nil(err)
	suite.assertDecimal("5800.25", all)
}

// TestLedgerOwnerIsolation verifies that no aggregate includes data of other owners.
func (suite *TestSuiteStandard) TestLedgerOwnerIsolation() {
	owner := suite.createTestOwner()
	other := suite.createTestOwner()

	for _, o := range []uuid.UUID{owner, other} {
		category := suite.createTestCategory(models.Category{OwnerID: o, Name: "Rent"})
		_ = suite.createTestAccount(models.Account{OwnerID: o, OnBudget: true, Balance: decimal.NewFromFloat(100)})
		_ = suite.createTestTransaction(models.Transaction{OwnerID: o, CategoryID: &category.ID, Amount: decimal.NewFromFloat(-10)})
		_ = suite.createTestAllocation(o, category.ID, types.NewMonth(2025, 10), "40")
	}

	sum, err := models.SumTransactions(models.DB, owner, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.assertDecimal("-10", sum)

	sum, err = models.SumBudgeted(models.DB, owner, models.AllocationFilter{})
	suite.Require().Nil(err)
	suite.assertDecimal("40", sum)

	sum, err = models.SumAccountBalances(models.DB, owner, true)
	suite.Require().Nil(err)
	suite.assertDecimal("100", sum)

	byCategory, err := models.SumTransactionsByCategory(models.DB, owner, models.TransactionFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(byCategory, 1)
}
