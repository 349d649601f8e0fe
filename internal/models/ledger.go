package models

import (
	"time"

	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sign restricts transaction sums to inflows or outflows.
type Sign int

const (
	SignAny Sign = iota
	SignPositive
	SignNegative
)

// TransactionFilter selects the transactions to sum up.
//
// From is inclusive, Until is exclusive. Zero values do not restrict the selection.
type TransactionFilter struct {
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	From       time.Time
	Until      time.Time
	Sign       Sign
}

func (f TransactionFilter) apply(query *gorm.DB) *gorm.DB {
	if f.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *f.CategoryID)
	}

	if f.AccountID != nil {
		query = query.Where("transactions.account_id = ?", *f.AccountID)
	}

	if !f.From.IsZero() {
		query = query.Where("transactions.date >= ?", f.From.UTC())
	}

	if !f.Until.IsZero() {
		query = query.Where("transactions.date < ?", f.Until.UTC())
	}

	switch f.Sign {
	case SignPositive:
		query = query.Where("transactions.amount > 0")
	case SignNegative:
		query = query.Where("transactions.amount < 0")
	}

	return query
}

// AllocationFilter selects the allocations to sum up.
//
// Month selects a single budget month, Before all budget months strictly
// before it. Zero values do not restrict the selection.
type AllocationFilter struct {
	CategoryID *uuid.UUID
	Month      types.Month
	Before     types.Month
}

func (f AllocationFilter) apply(query *gorm.DB) *gorm.DB {
	query = query.Joins("JOIN budget_months ON budget_months.id = budget_allocations.budget_month_id")

	if f.CategoryID != nil {
		query = query.Where("budget_allocations.category_id = ?", *f.CategoryID)
	}

	if !f.Month.IsZero() {
		query = query.Where("budget_months.month = ?", f.Month)
	}

	if !f.Before.IsZero() {
		query = query.Where("budget_months.month < ?", f.Before)
	}

	return query
}

// categorySum is a row of a sum grouped by category.
type categorySum struct {
	CategoryID uuid.UUID
	Sum        decimal.NullDecimal
}

func byCategory(rows []categorySum) map[uuid.UUID]decimal.Decimal {
	sums := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, r := range rows {
		sums[r.CategoryID] = r.Sum.Decimal
	}

	return sums
}

// SumTransactions returns the sum of the amounts of all transactions of the
// owner that match the filter.
//
// The sum is not rounded.
func SumTransactions(db *gorm.DB, owner uuid.UUID, filter TransactionFilter) (decimal.Decimal, error) {
	if owner == uuid.Nil {
		return decimal.Zero, ErrOwnerMissing
	}

	var sum decimal.NullDecimal
	err := filter.apply(db.Table("transactions")).
		Select("SUM(transactions.amount)").
		Where("transactions.owner_id = ?", owner).
		Find(&sum).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no transactions are found, the value is nil
	return sum.Decimal, nil
}

// SumTransactionsByCategory returns the sums of the amounts of all
// transactions of the owner that match the filter by category.
//
// Transactions without a category are ignored. Categories without
// matching transactions are not part of the result.
func SumTransactionsByCategory(db *gorm.DB, owner uuid.UUID, filter TransactionFilter) (map[uuid.UUID]decimal.Decimal, error) {
	if owner == uuid.Nil {
		return nil, ErrOwnerMissing
	}

	var rows []categorySum
	err := filter.apply(db.Table("transactions")).
		Select("transactions.category_id AS category_id, SUM(transactions.amount) AS sum").
		Where("transactions.owner_id = ? AND transactions.category_id IS NOT NULL", owner).
		Group("transactions.category_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return byCategory(rows), nil
}

// SumBudgeted returns the sum of all allocations of the owner that match the filter.
func SumBudgeted(db *gorm.DB, owner uuid.UUID, filter AllocationFilter) (decimal.Decimal, error) {
	if owner == uuid.Nil {
		return decimal.Zero, ErrOwnerMissing
	}

	var sum decimal.NullDecimal
	err := filter.apply(db.Table("budget_allocations")).
		Select("SUM(budget_allocations.budgeted)").
		Where("budget_allocations.owner_id = ?", owner).
		Find(&sum).
		Error
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}

// SumBudgetedByCategory returns the sums of all allocations of the owner that
// match the filter by category.
func SumBudgetedByCategory(db *gorm.DB, owner uuid.UUID, filter AllocationFilter) (map[uuid.UUID]decimal.Decimal, error) {
	if owner == uuid.Nil {
		return nil, ErrOwnerMissing
	}

	var rows []categorySum
	err := filter.apply(db.Table("budget_allocations")).
		Select("budget_allocations.category_id AS category_id, SUM(budget_allocations.budgeted) AS sum").
		Where("budget_allocations.owner_id = ?", owner).
		Group("budget_allocations.category_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	return byCategory(rows), nil
}

// SumAccountBalances returns the sum of the balances of the owner's accounts.
func SumAccountBalances(db *gorm.DB, owner uuid.UUID, onBudgetOnly bool) (decimal.Decimal, error) {
	if owner == uuid.Nil {
		return decimal.Zero, ErrOwnerMissing
	}

	query := db.Table("accounts").
		Select("SUM(accounts.balance)").
		Where("accounts.owner_id = ?", owner)

	if onBudgetOnly {
		query = query.Where("accounts.on_budget = ?", true)
	}

	var sum decimal.NullDecimal
	err := query.Find(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}

	return sum.Decimal, nil
}
