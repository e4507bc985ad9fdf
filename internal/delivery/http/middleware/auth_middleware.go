// Package middleware contains echo middleware specific to the HTTP API.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/delivery/http/response"
	"quill/internal/domain/entity"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyUser is where Authenticate stores the resolved *entity.User.
const ContextKeyUser = "currentUser"

// AuthMiddleware validates bearer tokens and resolves them to users.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate validates the access token and loads the subject's user
// record. The token alone is not enough: the account must still exist, so a
// token for a deleted user is rejected like any other invalid credential.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			m.log(c).Debug("Token verification failed", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		user, err := m.userRepo.FindByUsername(c.Request().Context(), claims.Username())
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				m.log(c).Warn("Token subject no longer exists", slog.String("username", claims.Username()))

				return response.Unauthorized(c, "INVALID_TOKEN", "Token subject no longer exists")
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

func (m *AuthMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// CurrentUser returns the user resolved by Authenticate, or nil when the
// route is not behind the middleware.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(ContextKeyUser).(*entity.User); ok {
		return user
	}

	return nil
}
