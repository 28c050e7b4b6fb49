// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/authhelp"
	"github.com/natterhq/natter/internal/config"
	"github.com/natterhq/natter/internal/database"
)

const (
	ContextUserKey    = "current_user"
	ContextProfileKey = "current_profile"
)

// AuthMiddleware resolves the caller's identity before any handler runs.
// A bearer token is checked first; a logged-in session cookie is accepted
// as a fallback for browser clients. Requests without either get a 401.
func AuthMiddleware(db *database.Queries, cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}

		userID, ok := resolveIdentity(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		ctx := c.Request.Context()
		user, err := db.GetUserByID(ctx, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextUserKey, user)

		// The profile is created together with the user, but a row may be
		// missing after a profile delete; handlers that need one check.
		if profile, err := db.GetProfileByUserID(ctx, userID); err == nil {
			c.Set(ContextProfileKey, profile)
		}

		c.Next()
	}
}

func resolveIdentity(c *gin.Context, cfg *config.AppConfig) (uuid.UUID, bool) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := authhelp.ParseToken(token, cfg.JWTSecret)
		if err != nil {
			return uuid.Nil, false
		}
		return userID, true
	}

	session := sessions.Default(c)
	sessionID := session.Get("user_id")
	if sessionID == nil {
		return uuid.Nil, false
	}
	idStr, ok := sessionID.(string)
	if !ok {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func isPublicRoute(path string) bool {
	switch path {
	case "/api/register", "/api/login", "/api/login/2fa", "/health":
		return true
	}
	return false
}
