package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payee is the counterparty of a transaction.
type Payee struct {
	DefaultModel
	OwnerID uuid.UUID `json:"-" gorm:"uniqueIndex:idx_payee_owner_name"`
	Owner   Owner     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name    string    `json:"name" gorm:"uniqueIndex:idx_payee_owner_name" example:"Corner Grocery"`
}

func (p *Payee) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

// PayeeByName returns the payee with the name, creating it if it does not exist.
func PayeeByName(db *gorm.DB, owner uuid.UUID, name string) (Payee, error) {
	if owner == uuid.Nil {
		return Payee{}, ErrOwnerMissing
	}

	if strings.TrimSpace(name) == "" {
		return Payee{}, ErrNameEmpty
	}

	var payee Payee
	err := db.
		Where(Payee{OwnerID: owner, Name: strings.TrimSpace(name)}).
		FirstOrCreate(&payee).
		Error
	if err != nil {
		return Payee{}, err
	}

	return payee, nil
}
