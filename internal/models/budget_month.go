package models

import (
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetMonth is the record of a month that has been budgeted for.
type BudgetMonth struct {
	DefaultModel
	OwnerID uuid.UUID   `json:"-" gorm:"uniqueIndex:idx_budget_month_owner_month"`
	Owner   Owner       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Month   types.Month `json:"month" gorm:"uniqueIndex:idx_budget_month_owner_month" example:"2025-11-01T00:00:00Z"`
}

// EnsureBudgetMonth returns the budget month for the owner, creating it
// if it does not exist.
//
// Concurrent calls for the same month all return the same record.
func EnsureBudgetMonth(db *gorm.DB, owner uuid.UUID, month types.Month) (BudgetMonth, error) {
	if owner == uuid.Nil {
		return BudgetMonth{}, ErrOwnerMissing
	}

	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "month"}},
			DoNothing: true,
		}).
		Create(&BudgetMonth{OwnerID: owner, Month: month}).
		Error
	if err != nil {
		return BudgetMonth{}, err
	}

	var budgetMonth BudgetMonth
	err = db.Where("owner_id = ? AND month = ?", owner, month).First(&budgetMonth).Error
	if err != nil {
		return BudgetMonth{}, err
	}

	return budgetMonth, nil
}
