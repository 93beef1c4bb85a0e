package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/config"
)

const ContextPrincipal = "principal"

// AuthMiddleware validates the bearer token and resolves the caller into
// an explicit access.Principal. Handlers read the principal once via
// Principal(c) and pass it down; nothing downstream touches the token.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, no token.",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authorization header.",
			})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, token failed.",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token claims.",
			})
			return
		}

		userID, okID := claims["sub"].(float64)
		roleStr, _ := claims["role"].(string)
		role, okRole := access.ParseRole(roleStr)
		if !okID || !okRole {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token payload.",
			})
			return
		}

		c.Set(ContextPrincipal, access.Principal{
			UserID: uint(userID),
			Role:   role,
		})

		c.Next()
	}
}

// Principal returns the authenticated caller set by AuthMiddleware.
func Principal(c *gin.Context) access.Principal {
	return c.MustGet(ContextPrincipal).(access.Principal)
}
