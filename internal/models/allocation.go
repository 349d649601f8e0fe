package models

import (
	"time"

	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetAllocation is the amount assigned to a category for a budget month.
//
// There is at most one allocation per owner, month and category.
type BudgetAllocation struct {
	DefaultModel
	OwnerID       uuid.UUID       `json:"-" gorm:"uniqueIndex:idx_allocation_owner_month_category"`
	Owner         Owner           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BudgetMonthID uuid.UUID       `json:"budgetMonthId" gorm:"uniqueIndex:idx_allocation_owner_month_category" example:"0b5b1d2e-3c1c-4a0b-8a84-0d0c5b8f2b61"`
	BudgetMonth   BudgetMonth     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID    uuid.UUID       `json:"categoryId" gorm:"uniqueIndex:idx_allocation_owner_month_category" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`
	Category      Category        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Budgeted      decimal.Decimal `json:"budgeted" gorm:"type:DECIMAL(12,2)" example:"150"`
}

// UpsertAllocation sets the budgeted amount for a category in a budget month.
//
// An existing allocation is overwritten, the amount is never accumulated.
func UpsertAllocation(db *gorm.DB, owner, budgetMonthID, categoryID uuid.UUID, budgeted decimal.Decimal) (BudgetAllocation, error) {
	if owner == uuid.Nil {
		return BudgetAllocation{}, ErrOwnerMissing
	}

	err := db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "budget_month_id"}, {Name: "category_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"budgeted":   budgeted,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&BudgetAllocation{
			OwnerID:       owner,
			BudgetMonthID: budgetMonthID,
			CategoryID:    categoryID,
			Budgeted:      budgeted,
		}).
		Error
	if err != nil {
		return BudgetAllocation{}, err
	}

	var allocation BudgetAllocation
	err = db.
		Where("owner_id = ? AND budget_month_id = ? AND category_id = ?", owner, budgetMonthID, categoryID).
		First(&allocation).
		Error
	if err != nil {
		return BudgetAllocation{}, err
	}

	return allocation, nil
}

// AllocationsForMonth returns the allocations of the owner in a month by category ID.
func AllocationsForMonth(db *gorm.DB, owner uuid.UUID, month types.Month) (map[uuid.UUID]BudgetAllocation, error) {
	if owner == uuid.Nil {
		return nil, ErrOwnerMissing
	}

	var allocations []BudgetAllocation
	err := db.
		Joins("JOIN budget_months ON budget_months.id = budget_allocations.budget_month_id").
		Where("budget_allocations.owner_id = ? AND budget_months.month = ?", owner, month).
		Find(&allocations).
		Error
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID]BudgetAllocation, len(allocations))
	for _, a := range allocations {
		byCategory[a.CategoryID] = a
	}

	return byCategory, nil
}
