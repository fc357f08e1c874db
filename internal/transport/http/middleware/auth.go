package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-solo/pkg/auth"
	"github.com/iamasit07/connect4-solo/pkg/httputil"
	"github.com/iamasit07/connect4-solo/pkg/uid"
)

const GameIDKey = "game_id"

// GameAuthMiddleware validates the game token and checks that it was issued
// for the game named in the :id path parameter.
func GameAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !uid.IsGameID(c.Param("id")) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		// 1. Extract Token (Header or Cookie)
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// 2. Validate JWT Signature
		claims, err := auth.ValidateGameToken(tokenString, jwtSecret)
		if err != nil {
			httputil.ClearGameCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// 3. Token must belong to the requested game
		if claims.GameID != c.Param("id") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not match game"})
			return
		}

		c.Set(GameIDKey, claims.GameID)
		c.Next()
	}
}
