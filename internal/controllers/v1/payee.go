package v1

import (
	"fmt"
	"net/http"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

type PayeeLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/payees/5f0b8a3c-1c3e-4f56-9a77-a3b2c1d0e9f8"` // The payee itself
}

type Payee struct {
	models.DefaultModel
	Name  string     `json:"name" example:"Corner Grocery"`
	Links PayeeLinks `json:"links"`
}

func newPayee(c *gin.Context, model models.Payee) Payee {
	return Payee{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Links: PayeeLinks{
			Self: fmt.Sprintf("%s/v1/payees/%s", baseURL(c), model.ID),
		},
	}
}

type PayeeListResponse struct {
	Data  []Payee `json:"data"`                                                          // List of payees
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PayeeQueryFilter struct {
	Name string `form:"name" example:"Corner*"` // Glob pattern the name must match. "*" matches any sequence of characters
}

// RegisterPayeeRoutes registers the routes for payees with
// the RouterGroup that is passed.
func RegisterPayeeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPayeeList)
		r.GET("", GetPayees)
	}

	// Payee with ID
	{
		r.OPTIONS("/:id", OptionsPayeeDetail)
		r.DELETE("/:id", DeletePayee)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payees
// @Success		204
// @Router			/v1/payees [options]
func OptionsPayeeList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payees
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payees/{id} [options]
func OptionsPayeeDetail(c *gin.Context) {
	_, ok := payeeFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsDelete(c)
}

// payeeFromURI loads the payee with the ID from the URI.
//
// If it cannot be loaded, the error response is written and ok is false.
func payeeFromURI(c *gin.Context) (payee models.Payee, ok bool) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, auth.Owner(c)).First(&payee).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	return payee, true
}

// @Summary		Get payees
// @Description	Returns all payees ordered by name
// @Tags			Payees
// @Produce		json
// @Success		200		{object}	PayeeListResponse
// @Failure		401		{object}	PayeeListResponse
// @Failure		500		{object}	PayeeListResponse
// @Param			name	query		string	false	"Glob pattern the name must match"
// @Router			/v1/payees [get]
func GetPayees(c *gin.Context) {
	var filter PayeeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.BindQuery(&filter)

	var payees []models.Payee
	err := models.DB.Where("owner_id = ?", auth.Owner(c)).Order("name ASC").Find(&payees).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), PayeeListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Payee, 0, len(payees))
	for _, payee := range payees {
		if filter.Name != "" && !glob.Glob(filter.Name, payee.Name) {
			continue
		}

		data = append(data, newPayee(c, payee))
	}

	c.JSON(http.StatusOK, PayeeListResponse{Data: data})
}

// @Summary		Delete payee
// @Description	Deletes a payee. Transactions of the payee are kept without a payee
// @Tags			Payees
// @Produce		json
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/payees/{id} [delete]
func DeletePayee(c *gin.Context) {
	payee, ok := payeeFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&payee).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
