package v1

import (
	"fmt"
	"net/http"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountEditable represents all user configurable parameters
type AccountEditable struct {
	Name     string          `json:"name" example:"Checking"`                // Name of the account
	OnBudget *bool           `json:"onBudget" example:"true" default:"true"` // Does the balance count towards the budget? Defaults to true
	Balance  decimal.Decimal `json:"balance" example:"1250.42"`              // Current balance of the account
}

func (editable AccountEditable) model(owner uuid.UUID) models.Account {
	onBudget := true
	if editable.OnBudget != nil {
		onBudget = *editable.OnBudget
	}

	return models.Account{
		OwnerID:  owner,
		Name:     editable.Name,
		OnBudget: onBudget,
		Balance:  types.RoundMoney(editable.Balance),
	}
}

// AccountPatch contains the fields of an account that can be updated.
// Fields that are not set are not changed.
type AccountPatch struct {
	Name     *string          `json:"name" example:"Checking"`
	OnBudget *bool            `json:"onBudget" example:"false"`
	Balance  *decimal.Decimal `json:"balance" example:"980.10"`
}

func (patch AccountPatch) apply(account *models.Account) {
	if patch.Name != nil {
		account.Name = *patch.Name
	}

	if patch.OnBudget != nil {
		account.OnBudget = *patch.OnBudget
	}

	if patch.Balance != nil {
		account.Balance = types.RoundMoney(*patch.Balance)
	}
}

type AccountLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // The account itself
}

type Account struct {
	models.DefaultModel
	Name     string          `json:"name" example:"Checking"`
	OnBudget bool            `json:"onBudget" example:"true"`
	Balance  decimal.Decimal `json:"balance" example:"1250.42"`
	Links    AccountLinks    `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) Account {
	return Account{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		OnBudget:     model.OnBudget,
		Balance:      types.RoundMoney(model.Balance),
		Links: AccountLinks{
			Self: fmt.Sprintf("%s/v1/accounts/%s", baseURL(c), model.ID),
		},
	}
}

type AccountListResponse struct {
	Data  []Account `json:"data"`                                                          // List of accounts
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Router			/v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Accounts
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	_, ok := accountFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsPatchDelete(c)
}

// accountFromURI loads the account with the ID from the URI.
//
// If it cannot be loaded, the error response is written and ok is false.
func accountFromURI(c *gin.Context) (account models.Account, ok bool) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, auth.Owner(c)).First(&account).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	return account, true
}

// @Summary		Get accounts
// @Description	Returns all accounts ordered by name
// @Tags			Accounts
// @Produce		json
// @Success		200	{object}	AccountListResponse
// @Failure		401	{object}	AccountListResponse
// @Failure		500	{object}	AccountListResponse
// @Router			/v1/accounts [get]
func GetAccounts(c *gin.Context) {
	var accounts []models.Account
	err := models.DB.Where("owner_id = ?", auth.Owner(c)).Order("name ASC").Find(&accounts).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AccountListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, newAccount(c, account))
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// @Summary		Create account
// @Description	Creates a new account
// @Tags			Accounts
// @Produce		json
// @Success		201		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		401		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			account	body		AccountEditable	true	"Account"
// @Router			/v1/accounts [post]
func CreateAccount(c *gin.Context) {
	var editable AccountEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	account := editable.model(auth.Owner(c))
	err = models.DB.Create(&account).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data := newAccount(c, account)
	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

// @Summary		Update account
// @Description	Updates an account. Only values to be updated need to be specified.
// @Tags			Accounts
// @Produce		json
// @Success		200		{object}	AccountResponse
// @Failure		400		{object}	AccountResponse
// @Failure		404		{object}	AccountResponse
// @Failure		500		{object}	AccountResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			account	body		AccountPatch	true	"Account"
// @Router			/v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	account, ok := accountFromURI(c)
	if !ok {
		return
	}

	var patch AccountPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	patch.apply(&account)
	err = models.DB.Save(&account).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AccountResponse{
			Error: &s,
		})
		return
	}

	data := newAccount(c, account)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

// @Summary		Delete account
// @Description	Deletes an account together with its transactions
// @Tags			Accounts
// @Produce		json
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	account, ok := accountFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&account).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
