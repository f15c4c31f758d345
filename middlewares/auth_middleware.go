package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	identityKey    = "identity"
	tokenKey       = "token"
	tokenExpiryKey = "tokenExpiry"
)

// TokenChecker reports tokens revoked by logout.
type TokenChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(checker TokenChecker) gin.HandlerFunc {
	return authenticate(checker, true)
}

// OptionalAuthMiddleware lets anonymous requests through. A token that is
// present but invalid is still rejected.
func OptionalAuthMiddleware(checker TokenChecker) gin.HandlerFunc {
	return authenticate(checker, false)
}

func authenticate(checker TokenChecker, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
				c.Abort()
				return
			}
			c.Next()
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header must be a bearer token"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		role, err := models.ParseRole(claims.Role)
		if err != nil || claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token claims"))
			c.Abort()
			return
		}

		if checker != nil {
			revoked, err := checker.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				utils.ErrorLogger.Printf("Token revocation check failed: %v", err)
				utils.RespondError(c, http.StatusInternalServerError, errors.New("unable to verify token"))
				c.Abort()
				return
			}
			if revoked {
				utils.RespondError(c, http.StatusUnauthorized, errors.New("token has been revoked"))
				c.Abort()
				return
			}
		}

		c.Set(identityKey, &models.Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
			Role:   role,
		})
		c.Set("userID", claims.UserID)
		c.Set("role", string(role))
		c.Set(tokenKey, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(tokenExpiryKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// CurrentIdentity returns the authenticated caller, or nil when anonymous.
func CurrentIdentity(c *gin.Context) *models.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*models.Identity)
	return id
}

// CurrentToken returns the raw bearer token and its expiry.
func CurrentToken(c *gin.Context) (string, time.Time) {
	token := c.GetString(tokenKey)
	expiry, _ := c.Get(tokenExpiryKey)
	t, _ := expiry.(time.Time)
	return token, t
}
