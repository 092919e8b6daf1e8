package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"github.com/fatflowers/storefront/pkg/response"
)

const GinAdminSubjectKey = "adminSubject"

// AdminAuthMiddleware admits requests carrying an HS256 bearer token signed
// with secret whose claims include "admin": true. With an empty secret every
// request is rejected.
func AdminAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abortUnauthorized(c, "admin api disabled")
			return
		}
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		if isAdmin, _ := claims["admin"].(bool); !isAdmin {
			abortUnauthorized(c, "admin claim required")
			return
		}
		if sub, ok := claims["sub"].(string); ok {
			c.Set(GinAdminSubjectKey, sub)
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, msg))
}
