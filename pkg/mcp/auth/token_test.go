package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target, authorization string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, target, nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c
}

func TestValidateRequest(t *testing.T) {
	cases := []struct {
		name          string
		target        string
		authorization string
		expected      string
		ok            bool
	}{
		{"open endpoint", "/mcp", "", "", true},
		{"bearer header", "/mcp", "Bearer s3cret", "s3cret", true},
		{"lowercase scheme", "/mcp", "bearer s3cret", "s3cret", true},
		{"raw header", "/mcp", "s3cret", "s3cret", true},
		{"query param", "/mcp?token=s3cret", "", "s3cret", true},
		{"query wins over header", "/mcp?token=wrong", "Bearer s3cret", "s3cret", false},
		{"missing", "/mcp", "", "s3cret", false},
		{"wrong token", "/mcp", "Bearer nope", "s3cret", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(newContext(tc.target, tc.authorization), tc.expected)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
