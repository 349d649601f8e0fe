package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recentTransactions is the number of transactions listed.
const recentTransactions = 200

// TransactionEditable represents all user configurable parameters
//
// The account and the payee can be given by ID or by name. Names that do not
// exist yet create a new account or payee.
type TransactionEditable struct {
	AccountID   *uuid.UUID      `json:"accountId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`  // ID of the account
	AccountName string          `json:"accountName" example:"Checking"`                            // Name of the account, used if no ID is given
	PayeeID     *uuid.UUID      `json:"payeeId" example:"1b8a6d1b-9ad6-4f41-b6bc-0dd1f4f2a0f6"`    // ID of the payee
	PayeeName   string          `json:"payeeName" example:"Corner Grocery"`                        // Name of the payee, used if no ID is given
	CategoryID  *uuid.UUID      `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"` // ID of the category. Transactions without category do not count towards any envelope
	Memo        string          `json:"memo" example:"Weekly groceries"`                           // A short description
	Amount      decimal.Decimal `json:"amount" example:"-42.17"`                                   // Positive for inflows, negative for outflows
	Date        time.Time       `json:"date" example:"2025-11-03T00:00:00Z"`                       // Day of the transaction. Defaults to today
	Cleared     bool            `json:"cleared" example:"true" default:"false"`                    // Has the transaction cleared the bank?
	Reconciled  bool            `json:"reconciled" example:"false" default:"false"`                // Has the transaction been reconciled?
}

// model resolves the account and payee and returns the transaction to create.
func (editable TransactionEditable) model(tx *gorm.DB, owner uuid.UUID) (models.Transaction, error) {
	transaction := models.Transaction{
		OwnerID:    owner,
		CategoryID: editable.CategoryID,
		Memo:       editable.Memo,
		Amount:     types.RoundMoney(editable.Amount),
		Date:       editable.Date,
		Cleared:    editable.Cleared,
		Reconciled: editable.Reconciled,
	}

	switch {
	case editable.AccountID != nil:
		transaction.AccountID = *editable.AccountID
	case editable.AccountName != "":
		account, err := models.AccountByName(tx, owner, editable.AccountName)
		if err != nil {
			return models.Transaction{}, err
		}
		transaction.AccountID = account.ID
	default:
		return models.Transaction{}, models.ErrAccountRequired
	}

	switch {
	case editable.PayeeID != nil:
		transaction.PayeeID = editable.PayeeID
	case editable.PayeeName != "":
		payee, err := models.PayeeByName(tx, owner, editable.PayeeName)
		if err != nil {
			return models.Transaction{}, err
		}
		transaction.PayeeID = &payee.ID
	default:
		return models.Transaction{}, models.ErrPayeeRequired
	}

	return transaction, nil
}

type TransactionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/transactions/4a9c0b7e-0e8d-4f7c-8c7b-2b0d5e1c9a3f"` // The transaction itself
	Account string `json:"account" example:"https://example.com/api/v1/accounts/3b1ea324-d438-4419-882a-2fc91d71772f"`  // The account of the transaction
}

type Transaction struct {
	models.DefaultModel
	AccountID  uuid.UUID        `json:"accountId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`
	PayeeID    *uuid.UUID       `json:"payeeId" example:"1b8a6d1b-9ad6-4f41-b6bc-0dd1f4f2a0f6"`
	CategoryID *uuid.UUID       `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`
	Memo       string           `json:"memo" example:"Weekly groceries"`
	Amount     decimal.Decimal  `json:"amount" example:"-42.17"`
	Date       time.Time        `json:"date" example:"2025-11-03T00:00:00Z"`
	Cleared    bool             `json:"cleared" example:"true"`
	Reconciled bool             `json:"reconciled" example:"false"`
	Links      TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := baseURL(c)

	return Transaction{
		DefaultModel: model.DefaultModel,
		AccountID:    model.AccountID,
		PayeeID:      model.PayeeID,
		CategoryID:   model.CategoryID,
		Memo:         model.Memo,
		Amount:       types.RoundMoney(model.Amount),
		Date:         model.Date,
		Cleared:      model.Cleared,
		Reconciled:   model.Reconciled,
		Links: TransactionLinks{
			Self:    fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Account: fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}
}

type TransactionListResponse struct {
	Data  []Transaction `json:"data"`                                                          // List of transactions
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	_, ok := transactionFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsDelete(c)
}

// transactionFromURI loads the transaction with the ID from the URI.
//
// If it cannot be loaded, the error response is written and ok is false.
func transactionFromURI(c *gin.Context) (transaction models.Transaction, ok bool) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, auth.Owner(c)).First(&transaction).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	return transaction, true
}

// @Summary		Get transactions
// @Description	Returns the 200 most recent transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		401	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	transactions, err := models.RecentTransactions(models.DB, auth.Owner(c), recentTransactions)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Create transaction
// @Description	Creates a new transaction. Accounts and payees given by a name that does not exist yet are created
// @Tags			Transactions
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.Atomic(models.DB, func(tx *gorm.DB) error {
		transaction, err = editable.model(tx, auth.Owner(c))
		if err != nil {
			return err
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Produce		json
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, ok := transactionFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
