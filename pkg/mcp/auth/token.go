package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidateRequest checks the request's access token against expected.
// The token is read from the `token` query parameter first, then from the
// Authorization header, with or without the Bearer scheme. An empty expected
// token leaves the endpoint open.
func ValidateRequest(c *gin.Context, expected string) error {
	if expected == "" {
		return nil
	}

	token := c.Query("token")
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			} else {
				token = parts[0]
			}
		}
	}

	if token == "" {
		return fmt.Errorf("missing access token (provide via URL param or Authorization header)")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
		return fmt.Errorf("invalid access token")
	}
	return nil
}
