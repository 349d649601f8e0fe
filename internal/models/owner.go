package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Owner is the identity all budget data belongs to.
//
// The ID is the subject of the identity provider's token.
type Owner struct {
	ID uuid.UUID `json:"id" gorm:"primaryKey" example:"2a5f1f34-04a2-4c39-9f1c-b0a1e1c7e5a1"`
	Timestamps
}

// defaultGroups are created for new owners when enabled.
var defaultGroups = []struct {
	name       string
	categories []string
}{
	{"Bills", []string{"Insurance", "Healthcare", "Household Supplies"}},
	{"Needs", []string{"Rent/Mortgage", "Utilities", "Groceries", "Transportation"}},
	{"Wants", []string{"Dining Out", "Entertainment", "Personal Care"}},
	{"Future Planning", []string{"Emergency Fund", "Retirement", "Investments"}},
}

// EnsureOwner creates the owner if it does not exist yet.
//
// When withDefaults is set, an owner that is created by this call gets the
// default category groups and categories. Existing owners are never changed.
func EnsureOwner(db *gorm.DB, id uuid.UUID, withDefaults bool) error {
	if id == uuid.Nil {
		return ErrOwnerMissing
	}

	return Atomic(db, func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&Owner{ID: id})
		if result.Error != nil {
			return result.Error
		}

		// The owner already existed
		if result.RowsAffected == 0 || !withDefaults {
			return nil
		}

		for i, g := range defaultGroups {
			group := CategoryGroup{OwnerID: id, Name: g.name, Sort: i}
			err := tx.Create(&group).Error
			if err != nil {
				return fmt.Errorf("creating default category group %s: %w", g.name, err)
			}

			for j, name := range g.categories {
				err := tx.Create(&Category{OwnerID: id, CategoryGroupID: group.ID, Name: name, Sort: j}).Error
				if err != nil {
					return fmt.Errorf("creating default category %s: %w", name, err)
				}
			}
		}

		return nil
	})
}
