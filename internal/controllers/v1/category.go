package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/budget"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name            string    `json:"name" example:"Groceries"`                                                          // Name of the category
	CategoryGroupID uuid.UUID `json:"categoryGroupId" binding:"required" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the group the category belongs to
	Sort            int       `json:"sort" example:"2"`                                                                  // Position of the category in its group
	Hidden          bool      `json:"hidden" example:"false" default:"false"`                                            // Is the category hidden on the dashboard?
}

func (editable CategoryEditable) model(owner uuid.UUID) models.Category {
	return models.Category{
		OwnerID:         owner,
		CategoryGroupID: editable.CategoryGroupID,
		Name:            editable.Name,
		Sort:            editable.Sort,
		Hidden:          editable.Hidden,
	}
}

// CategoryPatch contains the fields of a category that can be updated.
// Fields that are not set are not changed.
type CategoryPatch struct {
	Name            *string    `json:"name" example:"Groceries"`
	CategoryGroupID *uuid.UUID `json:"categoryGroupId" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"`
	Sort            *int       `json:"sort" example:"2"`
	Hidden          *bool      `json:"hidden" example:"true"`
}

func (patch CategoryPatch) apply(category *models.Category) {
	if patch.Name != nil {
		category.Name = *patch.Name
	}

	if patch.CategoryGroupID != nil {
		category.CategoryGroupID = *patch.CategoryGroupID
	}

	if patch.Sort != nil {
		category.Sort = *patch.Sort
	}

	if patch.Hidden != nil {
		category.Hidden = *patch.Hidden
	}
}

type CategoryLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/categories/d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`                // The category itself
	Available string `json:"available" example:"https://example.com/api/v1/categories/d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e/available"` // Availability of the category. Append ?month=YYYY-MM for a specific month
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := baseURL(c)

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:            model.Name,
			CategoryGroupID: model.CategoryGroupID,
			Sort:            model.Sort,
			Hidden:          model.Hidden,
		},
		Links: CategoryLinks{
			Self:      fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Available: fmt.Sprintf("%s/v1/categories/%s/available", url, model.ID),
		},
	}
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Availability is the money available in a category in a month.
type Availability struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`
	Month      string          `json:"month" example:"2025-11"`
	Available  decimal.Decimal `json:"available" example:"187.63"` // Budgeted minus spent, carried over from all previous months
}

type AvailabilityResponse struct {
	Data  *Availability `json:"data"`                                                          // The availability
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
		r.OPTIONS("/:id/available", OptionsCategoryAvailable)
		r.GET("/:id/available", GetCategoryAvailable)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	_, ok := categoryFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/available [options]
func OptionsCategoryAvailable(c *gin.Context) {
	_, ok := categoryFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsGet(c)
}

// categoryFromURI loads the category with the ID from the URI.
//
// If it cannot be loaded, the error response is written and ok is false.
func categoryFromURI(c *gin.Context) (models.Category, bool) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return models.Category{}, false
	}

	category, err := models.CategoryForOwner(models.DB, auth.Owner(c), uri.ID.UUID)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return models.Category{}, false
	}

	return category, true
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		401			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	category := editable.model(auth.Owner(c))
	err = models.DB.Create(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Update category
// @Description	Updates a category. Only values to be updated need to be specified.
// @Tags			Categories
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryPatch	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	category, ok := categoryFromURI(c)
	if !ok {
		return
	}

	var patch CategoryPatch
	err := httputil.BindData(c, &patch)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	patch.apply(&category)
	err = models.DB.Save(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a category and its allocations. Transactions of the category are kept without a category
// @Tags			Categories
// @Produce		json
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	category, ok := categoryFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Get category availability
// @Description	Returns the money available in the category in a month. Invalid or missing months select the current month
// @Tags			Categories
// @Produce		json
// @Success		200		{object}	AvailabilityResponse
// @Failure		400		{object}	AvailabilityResponse
// @Failure		404		{object}	AvailabilityResponse
// @Failure		500		{object}	AvailabilityResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	query		string	false	"Year and month in YYYY-MM format"
// @Router			/v1/categories/{id}/available [get]
func GetCategoryAvailable(c *gin.Context) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AvailabilityResponse{
			Error: &s,
		})
		return
	}

	var query QueryMonth
	_ = c.BindQuery(&query)
	month, token := types.ParsePeriod(query.Month, time.Now())

	available, err := budget.Available(models.DB, auth.Owner(c), uri.ID.UUID, month)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AvailabilityResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Data: &Availability{
		CategoryID: uri.ID.UUID,
		Month:      token,
		Available:  available,
	}})
}
