package auth

import (
	"strings"

	"github.com/envelope-zero/tracker/internal/httputil"
	"github.com/envelope-zero/tracker/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ContextOwner is the gin context key the owner ID is stored at.
const ContextOwner = "owner"

// Config configures the Middleware.
type Config struct {
	Secret            string // HMAC secret tokens are signed with
	Issuer            string // Required issuer, empty accepts any
	DefaultCategories bool   // Seed default categories for new owners
}

// Middleware authenticates requests with a bearer token.
//
// The token subject is the owner ID. Owners that do not exist yet are
// created on their first request.
func Middleware(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			abort(c, httputil.ErrUnauthorized)
			return
		}

		owner, err := ParseToken(cfg.Secret, cfg.Issuer, strings.TrimSpace(token))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("rejected token")
			abort(c, httputil.ErrUnauthorized)
			return
		}

		err = models.EnsureOwner(models.DB, owner, cfg.DefaultCategories)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(ContextOwner, owner)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(httputil.Status(err), httputil.HTTPError{Error: err.Error()})
}

// Owner returns the owner ID of an authenticated request.
//
// For requests that did not pass the Middleware, this is uuid.Nil.
func Owner(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextOwner)
	if !ok {
		return uuid.Nil
	}

	owner, _ := v.(uuid.UUID)
	return owner
}
