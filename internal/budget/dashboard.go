package budget

import (
	"fmt"
	"time"

	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Dashboard is the budget overview for a single month.
type Dashboard struct {
	Month             types.Month      `json:"month" example:"2025-11-01T00:00:00Z"`
	MonthToken        string           `json:"monthToken" example:"2025-11"`    // The month as YYYY-MM
	PreviousMonth     string           `json:"previousMonth" example:"2025-10"` // The previous month as YYYY-MM
	NextMonth         string           `json:"nextMonth" example:"2025-12"`     // The next month as YYYY-MM
	OnBudgetBalance   decimal.Decimal  `json:"onBudgetBalance" example:"2310.55"`
	ActivityThisMonth decimal.Decimal  `json:"activityThisMonth" example:"-820.13"`
	BudgetedThisMonth decimal.Decimal  `json:"budgetedThisMonth" example:"1900"`
	ToBeBudgeted      decimal.Decimal  `json:"toBeBudgeted" example:"410.55"` // Money that has not been assigned to any category yet
	Groups            []DashboardGroup `json:"groups"`
}

// DashboardGroup is a category group with the rows of its visible categories.
type DashboardGroup struct {
	ID   uuid.UUID      `json:"id" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`
	Name string         `json:"name" example:"Needs"`
	Rows []DashboardRow `json:"rows"`
}

// DashboardRow contains the numbers of a category for the month.
type DashboardRow struct {
	CategoryID   uuid.UUID       `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`
	Name         string          `json:"name" example:"Groceries"`
	Budgeted     decimal.Decimal `json:"budgeted" example:"400"`
	Activity     decimal.Decimal `json:"activity" example:"-212.37"`
	Available    decimal.Decimal `json:"available" example:"187.63"`
	AllocationID *uuid.UUID      `json:"allocationId" example:"0b5b1d2e-3c1c-4a0b-8a84-0d0c5b8f2b61"` // The allocation for the month, if one exists
}

// categorySums are the grouped sums the rows are built from.
type categorySums struct {
	priorBudgeted map[uuid.UUID]decimal.Decimal
	priorActivity map[uuid.UUID]decimal.Decimal
	budgeted      map[uuid.UUID]decimal.Decimal
	activity      map[uuid.UUID]decimal.Decimal
	allocations   map[uuid.UUID]models.BudgetAllocation
}

// RenderDashboard returns the dashboard for the month given as YYYY-MM.
//
// An empty or invalid month token selects the month of now. The budget
// month is created if it does not exist yet.
func RenderDashboard(db *gorm.DB, owner uuid.UUID, monthToken string, now time.Time) (Dashboard, error) {
	if owner == uuid.Nil {
		return Dashboard{}, models.ErrOwnerMissing
	}

	month, token := types.ParsePeriod(monthToken, now)

	_, err := models.EnsureBudgetMonth(db, owner, month)
	if err != nil {
		return Dashboard{}, fmt.Errorf("ensuring budget month %s: %w", token, err)
	}

	d := Dashboard{
		Month:         month,
		MonthToken:    token,
		PreviousMonth: month.Previous().String(),
		NextMonth:     month.Next().String(),
	}

	err = d.totals(db, owner)
	if err != nil {
		return Dashboard{}, err
	}

	sums, err := loadCategorySums(db, owner, month)
	if err != nil {
		return Dashboard{}, err
	}

	d.Groups, err = groups(db, owner, sums)
	if err != nil {
		return Dashboard{}, err
	}

	return d, nil
}

// totals sets the budget wide numbers of the dashboard.
func (d *Dashboard) totals(db *gorm.DB, owner uuid.UUID) error {
	balance, err := models.SumAccountBalances(db, owner, true)
	if err != nil {
		return fmt.Errorf("summing on budget balances: %w", err)
	}

	activity, err := models.SumTransactions(db, owner, models.TransactionFilter{From: d.Month.Time(), Until: d.Month.Next().Time()})
	if err != nil {
		return fmt.Errorf("summing activity: %w", err)
	}

	budgeted, err := models.SumBudgeted(db, owner, models.AllocationFilter{Month: d.Month})
	if err != nil {
		return fmt.Errorf("summing allocations: %w", err)
	}

	income, err := models.SumTransactions(db, owner, models.TransactionFilter{Sign: models.SignPositive})
	if err != nil {
		return fmt.Errorf("summing income: %w", err)
	}

	budgetedEver, err := models.SumBudgeted(db, owner, models.AllocationFilter{})
	if err != nil {
		return fmt.Errorf("summing all allocations: %w", err)
	}

	d.OnBudgetBalance = types.RoundMoney(balance)
	d.ActivityThisMonth = types.RoundMoney(activity)
	d.BudgetedThisMonth = types.RoundMoney(budgeted)
	d.ToBeBudgeted = types.RoundMoney(balance.Add(income).Sub(budgetedEver))

	return nil
}

// loadCategorySums loads the sums of all categories with one query per sum.
func loadCategorySums(db *gorm.DB, owner uuid.UUID, month types.Month) (s categorySums, err error) {
	s.priorBudgeted, err = models.SumBudgetedByCategory(db, owner, models.AllocationFilter{Before: month})
	if err != nil {
		return s, fmt.Errorf("summing prior allocations: %w", err)
	}

	s.priorActivity, err = models.SumTransactionsByCategory(db, owner, models.TransactionFilter{Until: month.Time()})
	if err != nil {
		return s, fmt.Errorf("summing prior activity: %w", err)
	}

	s.budgeted, err = models.SumBudgetedByCategory(db, owner, models.AllocationFilter{Month: month})
	if err != nil {
		return s, fmt.Errorf("summing allocations: %w", err)
	}

	s.activity, err = models.SumTransactionsByCategory(db, owner, models.TransactionFilter{From: month.Time(), Until: month.Next().Time()})
	if err != nil {
		return s, fmt.Errorf("summing activity: %w", err)
	}

	s.allocations, err = models.AllocationsForMonth(db, owner, month)
	if err != nil {
		return s, fmt.Errorf("loading allocations: %w", err)
	}

	return s, nil
}

// row builds the dashboard row for a category.
func (s categorySums) row(c models.Category) DashboardRow {
	// Missing map entries are the zero value, which is 0
	r := DashboardRow{
		CategoryID: c.ID,
		Name:       c.Name,
		Budgeted:   types.RoundMoney(s.budgeted[c.ID]),
		Activity:   types.RoundMoney(s.activity[c.ID]),
		Available:  availability(s.priorBudgeted[c.ID], s.priorActivity[c.ID], s.budgeted[c.ID], s.activity[c.ID]),
	}

	if a, ok := s.allocations[c.ID]; ok {
		id := a.ID
		r.AllocationID = &id
	}

	return r
}

// groups returns all category groups of the owner with rows for the
// categories that are not hidden.
func groups(db *gorm.DB, owner uuid.UUID, sums categorySums) ([]DashboardGroup, error) {
	var categoryGroups []models.CategoryGroup
	err := db.Where("owner_id = ?", owner).Order("sort, name").Find(&categoryGroups).Error
	if err != nil {
		return nil, fmt.Errorf("loading category groups: %w", err)
	}

	var categories []models.Category
	err = db.Where("owner_id = ? AND hidden = ?", owner, false).Order("sort, name").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	rows := make(map[uuid.UUID][]DashboardRow, len(categoryGroups))
	for _, c := range categories {
		rows[c.CategoryGroupID] = append(rows[c.CategoryGroupID], sums.row(c))
	}

	result := make([]DashboardGroup, 0, len(categoryGroups))
	for _, g := range categoryGroups {
		r := rows[g.ID]
		if r == nil {
			r = []DashboardRow{}
		}

		result = append(result, DashboardGroup{
			ID:   g.ID,
			Name: g.Name,
			Rows: r,
		})
	}

	return result, nil
}
