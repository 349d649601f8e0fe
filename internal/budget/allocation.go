package budget

import (
	"time"

	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WriteAllocation sets the amount budgeted for a category in a month.
//
// The month is given as YYYY-MM and the amount as free text. Invalid input
// does not fail: an invalid month selects the current month, an invalid
// amount is 0. An existing allocation is overwritten.
//
// If the category does not belong to the owner, nothing is written and
// models.ErrResourceNotFound is returned.
func WriteAllocation(db *gorm.DB, owner, categoryID uuid.UUID, monthToken, rawAmount string) (models.BudgetAllocation, error) {
	if owner == uuid.Nil {
		return models.BudgetAllocation{}, models.ErrOwnerMissing
	}

	month, _ := types.ParsePeriod(monthToken, time.Now())
	amount := types.ParseAmount(rawAmount)

	var allocation models.BudgetAllocation
	err := models.Atomic(db, func(tx *gorm.DB) error {
		_, err := models.CategoryForOwner(tx, owner, categoryID)
		if err != nil {
			return err
		}

		budgetMonth, err := models.EnsureBudgetMonth(tx, owner, month)
		if err != nil {
			return err
		}

		allocation, err = models.UpsertAllocation(tx, owner, budgetMonth.ID, categoryID, amount)
		return err
	})
	if err != nil {
		return models.BudgetAllocation{}, err
	}

	return allocation, nil
}
