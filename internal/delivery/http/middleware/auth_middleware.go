// Package middleware contains the HTTP middlewares of the delivery layer.
package middleware

import (
	"net/http"
	"strings"

	"commune/config"
	"commune/internal/domain/entity"
	"commune/internal/domain/repository"
	"commune/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorContextKey is the echo.Context key the resolved actor is stored under.
const actorContextKey = "actor"

// AuthMiddleware provides middleware for JWT authentication and actor resolution.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, cfg: cfg}
}

// Authenticate validates the JWT access token and resolves the calling
// account into an entity.Actor. The account is loaded from storage so the
// actor carries the current roles and resident link, not the ones frozen
// into the token at login.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
		}

		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User ID missing from token"})
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID format in token"})
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), userID)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Account no longer exists"})
		}

		SetActor(c, entity.Actor{
			UserID:     user.ID,
			Roles:      user.Roles,
			ResidentID: user.ResidentID,
		})

		return next(c)
	}
}

// SetActor stores the resolved actor on the request context.
func SetActor(c echo.Context, actor entity.Actor) {
	c.Set(actorContextKey, actor)
}

// ActorFromContext retrieves the resolved actor set by Authenticate.
func ActorFromContext(c echo.Context) (entity.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(entity.Actor)

	return actor, ok
}
