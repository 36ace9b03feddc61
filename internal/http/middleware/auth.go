package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aldanbek/gigworks-billing/internal/auth"
	"github.com/aldanbek/gigworks-billing/internal/model"
)

const principalKey = "principal"

// ProfileResolver turns an authenticated profile id into the full profile.
type ProfileResolver interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Auth validates the bearer token and attaches the resolved Principal to the
// request context. Requests without a valid token and existing profile are
// rejected with 401.
func Auth(parser *auth.Parser, profiles ProfileResolver, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing credentials")
			return
		}

		profileID, err := parser.Parse(token)
		if err != nil {
			unauthorized(c, "invalid credentials")
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), profileID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			unauthorized(c, "invalid credentials")
			return
		}
		if err != nil {
			log.Error().Err(err).Str("profile_id", profileID.String()).Msg("profile lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  false,
				"code":    http.StatusInternalServerError,
				"message": "an error occurred processing the request",
			})
			return
		}

		c.Set(principalKey, model.Principal{
			ID:       profile.ID,
			Type:     profile.Type,
			FullName: profile.FullName(),
		})
		c.Next()
	}
}

// MustPrincipal returns the Principal set by Auth.
func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

// SetPrincipal is a test hook for handlers behind Auth.
func SetPrincipal(c *gin.Context, principal model.Principal) {
	c.Set(principalKey, principal)
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  false,
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
