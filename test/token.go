package test

import (
	"os"
	"testing"
	"time"

	"github.com/envelope-zero/tracker/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Bearer returns the Authorization header for a token of the owner,
// signed with the JWT_SECRET and JWT_ISSUER from the environment.
func Bearer(t *testing.T, owner uuid.UUID) map[string]string {
	return BearerFor(t, os.Getenv("JWT_SECRET"), os.Getenv("JWT_ISSUER"), owner)
}

// BearerFor returns the Authorization header for a token of the owner
// signed with the secret.
func BearerFor(t *testing.T, secret, issuer string, owner uuid.UUID) map[string]string {
	token, err := auth.NewToken(secret, issuer, owner, time.Hour)
	require.Nil(t, err, "token could not be signed")

	return map[string]string{"Authorization": "Bearer " + token}
}
