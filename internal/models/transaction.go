package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single movement of money on an account.
//
// Positive amounts are inflows, negative amounts are outflows.
type Transaction struct {
	DefaultModel
	OwnerID    uuid.UUID       `json:"-" gorm:"index"`
	Owner      Owner           `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AccountID  uuid.UUID       `json:"accountId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	Account    Account         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PayeeID    *uuid.UUID      `json:"payeeId" example:"1b8a6d1b-9ad6-4f41-b6bc-0dd1f4f2a0f6"`
	Payee      *Payee          `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"` // Transactions without a category do not count towards any envelope
	Category   *Category       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Memo       string          `json:"memo" example:"Weekly groceries"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(12,2)" example:"-42.17"`
	Date       time.Time       `json:"date" gorm:"index" example:"2025-11-03T00:00:00Z"` // Day of the transaction, always 00:00 UTC
	Cleared    bool            `json:"cleared" example:"true"`
	Reconciled bool            `json:"reconciled" example:"false"`
}

// AfterFind sets the timezone of the date to UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	_ = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave normalizes the transaction and verifies that all
// referenced resources belong to the same owner.
//
// The date is set to the start of its calendar day in UTC. A transaction
// without a date is dated today.
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = time.Date(t.Date.Year(), t.Date.Month(), t.Date.Day(), 0, 0, 0, 0, time.UTC)

	t.Memo = strings.TrimSpace(t.Memo)

	err = tx.Where("id = ? AND owner_id = ?", t.AccountID, t.OwnerID).First(&Account{}).Error
	if err != nil {
		return err
	}

	if t.PayeeID != nil {
		err = tx.Where("id = ? AND owner_id = ?", *t.PayeeID, t.OwnerID).First(&Payee{}).Error
		if err != nil {
			return err
		}
	}

	if t.CategoryID != nil {
		err = tx.Where("id = ? AND owner_id = ?", *t.CategoryID, t.OwnerID).First(&Category{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// RecentTransactions returns the most recent transactions of the owner,
// newest first.
func RecentTransactions(db *gorm.DB, owner uuid.UUID, limit int) ([]Transaction, error) {
	if owner == uuid.Nil {
		return nil, ErrOwnerMissing
	}

	var transactions []Transaction
	err := db.
		Where("owner_id = ?", owner).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactions).
		Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
