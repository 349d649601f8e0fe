package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryGroup groups categories on the dashboard.
type CategoryGroup struct {
	DefaultModel
	OwnerID uuid.UUID `json:"-" gorm:"uniqueIndex:idx_category_group_owner_name"`
	Owner   Owner     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name    string    `json:"name" gorm:"uniqueIndex:idx_category_group_owner_name" example:"Needs"`
	Sort    int       `json:"sort" example:"1"` // Position of the group. Groups with the same position are ordered by name
}

func (g *CategoryGroup) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return ErrNameEmpty
	}

	return nil
}
