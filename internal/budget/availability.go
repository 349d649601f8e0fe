// Package budget implements the envelope budgeting calculations.
package budget

import (
	"fmt"

	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// availability combines the components of the available amount of a category.
//
// All values are expected unrounded, the result is rounded once.
func availability(priorBudgeted, priorActivity, budgeted, activity decimal.Decimal) decimal.Decimal {
	return types.RoundMoney(priorBudgeted.Add(priorActivity).Add(budgeted).Add(activity))
}

// Available returns the amount available in a category at the end of a month.
//
// Everything budgeted for and spent from the category before the month
// carries forward. A negative result means the category is overspent.
//
// Available does not create the budget month.
func Available(db *gorm.DB, owner, categoryID uuid.UUID, month types.Month) (decimal.Decimal, error) {
	_, err := models.CategoryForOwner(db, owner, categoryID)
	if err != nil {
		return decimal.Zero, err
	}

	priorBudgeted, err := models.SumBudgeted(db, owner, models.AllocationFilter{CategoryID: &categoryID, Before: month})
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing prior allocations: %w", err)
	}

	priorActivity, err := models.SumTransactions(db, owner, models.TransactionFilter{CategoryID: &categoryID, Until: month.Time()})
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing prior activity: %w", err)
	}

	budgeted, err := models.SumBudgeted(db, owner, models.AllocationFilter{CategoryID: &categoryID, Month: month})
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing allocations: %w", err)
	}

	activity, err := models.SumTransactions(db, owner, models.TransactionFilter{CategoryID: &categoryID, From: month.Time(), Until: month.Next().Time()})
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing activity: %w", err)
	}

	return availability(priorBudgeted, priorActivity, budgeted, activity), nil
}
