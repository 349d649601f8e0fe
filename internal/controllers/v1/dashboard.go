package v1

import (
	"net/http"
	"time"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/envelope-zero/tracker/internal/budget"
	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	Data  *budget.Dashboard `json:"data"`                                                          // The dashboard for the month
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the budget overview for a month. Invalid or missing months select the current month
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		401		{object}	DashboardResponse
// @Failure		500		{object}	DashboardResponse
// @Param			month	query		string	false	"Year and month in YYYY-MM format"
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query QueryMonth

	// Every parameter is bound into a string, so this will always succeed
	_ = c.BindQuery(&query)

	dashboard, err := budget.RenderDashboard(models.DB, auth.Owner(c), query.Month, time.Now())
	if err != nil {
		s := err.Error()
		c.JSON(httputil.Status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
