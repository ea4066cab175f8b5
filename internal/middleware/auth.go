package middleware

import (
	"context"
	"strings"

	"github.com/JonnyWalker81/habitmood/backend/internal/apierror"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
)

// TokenVerifier resolves a bearer token to its user
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*supabase.User, error)
}

// bearerToken extracts the token from "Bearer <token>"; the scheme is case-insensitive
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Auth verifies the Supabase access token and stores the user on the gin
// context ("user_id", "user_email") and on the request context for logging.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reject := func(reason string, fields ...logger.Field) {
			logger.Ctx(ctx).Debug("authentication failed: "+reason, fields...)
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject("missing or malformed bearer token")
			return
		}

		user, err := verifier.VerifyToken(ctx, token)
		if err != nil {
			reject("token rejected", logger.Err(err))
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user_email", user.Email)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, user.ID))
		c.Next()
	}
}
