package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrOwnerMissing     = errors.New("no owner is associated with the request")

	ErrNameEmpty                  = errors.New("the name must not be empty")
	ErrAccountNameNotUnique       = errors.New("the account name must be unique")
	ErrPayeeNameNotUnique         = errors.New("the payee name must be unique")
	ErrCategoryGroupNameNotUnique = errors.New("the category group name must be unique")
	ErrAllocationNotUnique        = errors.New("there already is an allocation for this category in this month")
	ErrBudgetMonthNotUnique       = errors.New("there already is a budget month for this month")
	ErrAccountRequired            = errors.New("either an account ID or an account name is required")
	ErrPayeeRequired              = errors.New("either a payee ID or a payee name is required")
)
