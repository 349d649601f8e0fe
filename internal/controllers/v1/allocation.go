package v1

import (
	"fmt"
	"net/http"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/budget"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/envelope-zero/tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationEditable is the form for setting the budgeted amount of a category.
type AllocationEditable struct {
	CategoryID uuid.UUID `json:"categoryId" binding:"required" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"` // ID of the category
	Month      string    `json:"month" example:"2025-11"`                                                      // Year and month in YYYY-MM format. Invalid months select the current month
	Budgeted   string    `json:"budgeted" example:"1,250.00"`                                                  // The amount. Thousands separators are ignored, invalid amounts are 0
}

type AllocationLinks struct {
	Category  string `json:"category" example:"https://example.com/api/v1/categories/d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`                          // The category
	Available string `json:"available" example:"https://example.com/api/v1/categories/d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e/available?month=2025-11"` // Availability of the category in the month
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard?month=2025-11"`                                                 // The dashboard for the month
}

type Allocation struct {
	models.DefaultModel
	CategoryID uuid.UUID       `json:"categoryId" example:"d7b1e6c2-5a8f-4c9e-b7a4-6b3f8f1c2d9e"`
	Month      string          `json:"month" example:"2025-11"`
	Budgeted   decimal.Decimal `json:"budgeted" example:"1250"`
	Links      AllocationLinks `json:"links"`
}

func newAllocation(c *gin.Context, model models.BudgetAllocation, month string) Allocation {
	url := baseURL(c)

	return Allocation{
		DefaultModel: model.DefaultModel,
		CategoryID:   model.CategoryID,
		Month:        month,
		Budgeted:     types.RoundMoney(model.Budgeted),
		Links: AllocationLinks{
			Category:  fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			Available: fmt.Sprintf("%s/v1/categories/%s/available?month=%s", url, model.CategoryID, month),
			Dashboard: fmt.Sprintf("%s/v1/dashboard?month=%s", url, month),
		},
	}
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAllocations)
	r.POST("", SetAllocation)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsAllocations(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Set allocation
// @Description	Sets the amount budgeted for a category in a month. An existing allocation is overwritten
// @Tags			Allocations
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		401			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/allocations [post]
func SetAllocation(c *gin.Context) {
	var editable AllocationEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	allocation, err := budget.WriteAllocation(models.DB, auth.Owner(c), editable.CategoryID, editable.Month, editable.Budgeted)
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	var budgetMonth models.BudgetMonth
	err = models.DB.First(&budgetMonth, "id = ?", allocation.BudgetMonthID).Error
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), AllocationResponse{
			Error: &s,
		})
		return
	}

	data := newAllocation(c, allocation, budgetMonth.Month.String())
	c.JSON(http.StatusOK, AllocationResponse{Data: &data})
}
