package v1

import (
	"github.com/envelope-zero/tracker/internal/models"
	ez_uuid "github.com/envelope-zero/tracker/internal/uuid"
	"github.com/gin-gonic/gin"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type QueryMonth struct {
	Month string `form:"month" example:"2025-11"` // Year and month in YYYY-MM format. Defaults to the current month
}

// baseURL returns the URL the API is reachable at.
func baseURL(c *gin.Context) string {
	return c.GetString(string(models.DBContextURL))
}
