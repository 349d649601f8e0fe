package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a budget envelope.
//
// Deleting a category removes its allocations. Transactions referencing it
// keep existing without a category.
type Category struct {
	DefaultModel
	OwnerID         uuid.UUID     `json:"-" gorm:"index"`
	Owner           Owner         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryGroupID uuid.UUID     `json:"categoryGroupId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`
	CategoryGroup   CategoryGroup `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name            string        `json:"name" example:"Groceries"`
	Sort            int           `json:"sort" example:"2"`
	Hidden          bool          `json:"hidden" example:"false"` // Hidden categories are not shown on the dashboard
}

// BeforeSave trims whitespace and verifies that the category group
// belongs to the same owner.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameEmpty
	}


	return tx.
		Where("id = ? AND owner_id = ?", c.CategoryGroupID, c.OwnerID).
		First(&CategoryGroup{}).
		Error
}

// CategoryForOwner returns the category with the ID if it belongs to the owner.
func CategoryForOwner(db *gorm.DB, owner, id uuid.UUID) (Category, error) {
	if owner == uuid.Nil {
		return Category{}, ErrOwnerMissing
	}

	var category Category
	err := db.Where("id = ? AND owner_id = ?", id, owner).First(&category).Error
	if err != nil {
		return Category{}, err
	}

	return category, nil
}
