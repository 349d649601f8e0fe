package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an asset account, e.g. a bank account.
//
// The balance is maintained by the owner and not derived from transactions.
type Account struct {
	DefaultModel
	OwnerID  uuid.UUID       `json:"-" gorm:"uniqueIndex:idx_account_owner_name"`
	Owner    Owner           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name     string          `json:"name" gorm:"uniqueIndex:idx_account_owner_name" example:"Checking"`
	OnBudget bool            `json:"onBudget" example:"true"`                             // Whether the balance counts towards the budget
	Balance  decimal.Decimal `json:"balance" gorm:"type:DECIMAL(12,2)" example:"1250.42"` // Current balance
}

// BeforeSave trims whitespace from all strings. The name must not be empty.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

// AccountByName returns the account with the name, creating it if it does not exist.
//
// Created accounts are on budget and have a zero balance.
func AccountByName(db *gorm.DB, owner uuid.UUID, name string) (Account, error) {
	if owner == uuid.Nil {
		return Account{}, ErrOwnerMissing
	}

	if strings.TrimSpace(name) == "" {
		return Account{}, ErrNameEmpty
	}

	var account Account
	err := db.
		Where(Account{OwnerID: owner, Name: strings.TrimSpace(name)}).
		Attrs(Account{OnBudget: true, Balance: decimal.Zero}).
		FirstOrCreate(&account).
		Error
	if err != nil {
		return Account{}, err
	}

	return account, nil
}
