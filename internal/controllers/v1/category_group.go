package v1

import (
	"fmt"
	"net/http"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryGroupEditable represents all user configurable parameters
type CategoryGroupEditable struct {
	Name string `json:"name" example:"Needs"` // Name of the group
	Sort int    `json:"sort" example:"1"`     // Position of the group on the dashboard
}

func (editable CategoryGroupEditable) model(owner uuid.UUID) models.CategoryGroup {
	return models.CategoryGroup{
		OwnerID: owner,
		Name:    editable.Name,
		Sort:    editable.Sort,
	}
}

type CategoryGroupLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/category-groups/8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // The group itself
}

type CategoryGroup struct {
	models.DefaultModel
	CategoryGroupEditable
	Links      CategoryGroupLinks `json:"links"`
	Categories []Category         `json:"categories"` // Categories of the group, ordered by position and name
}

func newCategoryGroup(c *gin.Context, model models.CategoryGroup, categories []models.Category) CategoryGroup {
	group := CategoryGroup{
		DefaultModel: model.DefaultModel,
		CategoryGroupEditable: CategoryGroupEditable{
			Name: model.Name,
			Sort: model.Sort,
		},
		Links: CategoryGroupLinks{
			Self: fmt.Sprintf("%s/v1/category-groups/%s", baseURL(c), model.ID),
		},
		Categories: make([]Category, 0, len(categories)),
	}

	for _, category := range categories {
		group.Categories = append(group.Categories, newCategory(c, category))
	}

	return group
}

type CategoryGroupListResponse struct {
	Data  []CategoryGroup `json:"data"`                                                          // List of category groups
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryGroupResponse struct {
	Data  *CategoryGroup `json:"data"`                                                          // Data for the category group
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterCategoryGroupRoutes registers the routes for category groups with
// the RouterGroup that is passed.
func RegisterCategoryGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryGroupList)
		r.GET("", GetCategoryGroups)
		r.POST("", CreateCategoryGroup)
	}

	// Category group with ID
	{
		r.OPTIONS("/:id", OptionsCategoryGroupDetail)
		r.DELETE("/:id", DeleteCategoryGroup)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Category Groups
// @Success		204
// @Router			/v1/category-groups [options]
func OptionsCategoryGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Category Groups
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/category-groups/{id} [options]
func OptionsCategoryGroupDetail(c *gin.Context) {
	_, ok := categoryGroupFromURI(c)
	if !ok {
		return
	}

	httputil.OptionsDelete(c)
}

// categoryGroupFromURI loads the category group with the ID from the URI.
//
// If it cannot be loaded, the error response is written and ok is false.
func categoryGroupFromURI(c *gin.Context) (group models.CategoryGroup, ok bool) {
	var uri URIID
	err := httputil.BindURI(c, &uri)
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Where("id = ? AND owner_id = ?", uri.ID.UUID, auth.Owner(c)).First(&group).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	return group, true
}

// @Summary		Get category groups
// @Description	Returns all category groups with their categories, ordered by position and name
// @Tags			Category Groups
// @Produce		json
// @Success		200	{object}	CategoryGroupListResponse
// @Failure		401	{object}	CategoryGroupListResponse
// @Failure		500	{object}	CategoryGroupListResponse
// @Router			/v1/category-groups [get]
func GetCategoryGroups(c *gin.Context) {
	owner := auth.Owner(c)

	var groups []models.CategoryGroup
	err := models.DB.Where("owner_id = ?", owner).Order("sort, name").Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryGroupListResponse{
			Error: &s,
		})
		return
	}

	var categories []models.Category
	err = models.DB.Where("owner_id = ?", owner).Order("sort, name").Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryGroupListResponse{
			Error: &s,
		})
		return
	}

	byGroup := make(map[uuid.UUID][]models.Category)
	for _, category := range categories {
		byGroup[category.CategoryGroupID] = append(byGroup[category.CategoryGroupID], category)
	}

	data := make([]CategoryGroup, 0, len(groups))
	for _, group := range groups {
		data = append(data, newCategoryGroup(c, group, byGroup[group.ID]))
	}

	c.JSON(http.StatusOK, CategoryGroupListResponse{Data: data})
}

// @Summary		Create category group
// @Description	Creates a new category group
// @Tags			Category Groups
// @Produce		json
// @Success		201		{object}	CategoryGroupResponse
// @Failure		400		{object}	CategoryGroupResponse
// @Failure		401		{object}	CategoryGroupResponse
// @Failure		500		{object}	CategoryGroupResponse
// @Param			group	body		CategoryGroupEditable	true	"Category group"
// @Router			/v1/category-groups [post]
func CreateCategoryGroup(c *gin.Context) {
	var editable CategoryGroupEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	group := editable.model(auth.Owner(c))
	err = models.DB.Create(&group).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), CategoryGroupResponse{
			Error: &s,
		})
		return
	}

	data := newCategoryGroup(c, group, nil)
	c.JSON(http.StatusCreated, CategoryGroupResponse{Data: &data})
}

// @Summary		Delete category group
// @Description	Deletes a category group together with its categories
// @Tags			Category Groups
// @Produce		json
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/category-groups/{id} [delete]
func DeleteCategoryGroup(c *gin.Context) {
	group, ok := categoryGroupFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(httputil.Status(err), httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
