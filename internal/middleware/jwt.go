package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ignite/tuition-service/internal/response"
)

const (
	// ContextKeyClaims is the Gin context key for verified JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyToken is the Gin context key for the raw Authorization header.
	ContextKeyToken = "auth_token"
)

// ForwardToken stores the inbound Authorization header unmodified so
// handlers can pass it to the student and payment services. A missing
// header is stored as "".
func ForwardToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyToken, c.GetHeader("Authorization"))
		c.Next()
	}
}

// Token returns the header captured by ForwardToken.
func Token(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}

// RequireJWT verifies an HS256 bearer token signed with secret. An empty
// secret disables verification and every request passes through.
func RequireJWT(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}

	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		tokenStr, err := bearer(c.GetHeader("Authorization"))
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrUnauthorized)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the verified JWT claims from the Gin context.
func GetClaims(c *gin.Context) jwt.MapClaims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

var errNoBearer = errors.New("authorization header with bearer token required")

func bearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", errNoBearer
	}
	return parts[1], nil
}
