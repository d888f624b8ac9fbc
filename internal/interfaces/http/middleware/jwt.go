package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wholesale/backend/internal/infrastructure/auth"
	"github.com/wholesale/backend/internal/infrastructure/logger"
	"github.com/wholesale/backend/internal/interfaces/http/dto"
)

// Gin context keys set after successful authentication.
const (
	ClaimsKey     = "jwt_claims"
	UserIDKey     = "jwt_user_id"
	RoleKey       = "jwt_role"
	RetailerIDKey = "jwt_retailer_id"

	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// JWTAuthConfig configures the authentication middleware.
type JWTAuthConfig struct {
	Service   *auth.JWTService
	SkipPaths []string
}

// JWTAuth verifies the bearer token on every request outside SkipPaths
// and stores the claims in both the gin context and the request context.
func JWTAuth(cfg JWTAuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		header := c.GetHeader(authHeader)
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}

		tokenString := strings.TrimPrefix(header, bearerPrefix)
		claims, err := cfg.Service.ValidateToken(tokenString)
		if err != nil {
			code, message := "INVALID_TOKEN", "Invalid token"
			if err == auth.ErrExpiredToken {
				code, message = "TOKEN_EXPIRED", "Token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(RoleKey, claims.Role)
		c.Set(RetailerIDKey, claims.RetailerID)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, log = logger.WithUserID(ctx, log, claims.UserID)
		if claims.RetailerID != "" {
			ctx, _ = logger.WithRetailerID(ctx, log, claims.RetailerID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin
// role. Must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsAdmin() {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Admin access required", requestID))
			return
		}
		c.Next()
	}
}

// GetClaims returns the verified claims, or nil on unauthenticated paths.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID returns the authenticated user ID, or "" when absent.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// GetRetailerID returns the retailer ID claim, or "" for admin tokens.
func GetRetailerID(c *gin.Context) string {
	if v, ok := c.Get(RetailerIDKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}
