package middleware

import (
	"context"
	"strings"

	"healthtracker/internal/models"
	"healthtracker/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AuthContextKey string

const (
	UserKey      AuthContextKey = "user"
	UserKeyFiber string         = "User"
)

// RequireAuth resolves the caller from the bearer token and provisions the
// user on first sight. In development a configured placeholder subject
// stands in for requests that carry no token.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := logger.New("middleware").TraceFromContext(ctx).Function("RequireAuth")

		var info *types.TokenInfo

		authHeader := c.Get(fiber.HeaderAuthorization)
		switch {
		case authHeader != "":
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				log.Info("invalid authorization header format")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid authorization header format",
				})
			}

			var err error
			info, err = m.tokenService.ValidateToken(ctx, token)
			if err != nil {
				log.Info("token validation failed", "error", err.Error())
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
		case m.Config.IsDevelopment() && m.Config.DevUserSubject != "":
			info = &types.TokenInfo{Subject: m.Config.DevUserSubject, Name: "Development User"}
		default:
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		user, err := m.resolveUser(ctx, info)
		if err != nil {
			_ = log.Err("failed to resolve user", err, "subject", info.Subject)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		c.Locals(UserKeyFiber, user)
		c.SetUserContext(context.WithValue(ctx, UserKey, user))

		log.Debug("user authenticated", "userID", user.ID)
		return c.Next()
	}
}

func (m *Middleware) resolveUser(ctx context.Context, info *types.TokenInfo) (*models.User, error) {
	candidate := &models.User{Subject: info.Subject, DisplayName: info.Name}
	if info.Email != "" {
		email := info.Email
		candidate.Email = &email
	}

	user, err := m.userRepo.FindOrCreateBySubject(ctx, m.DB.SQL, candidate)
	if err != nil {
		return nil, err
	}

	if profileChanged(user, info) {
		user.UpdateFromClaims(info.Email, info.Name)
		if err := m.userRepo.Update(ctx, m.DB.SQL, user); err != nil {
			m.log.Function("resolveUser").Warn("failed to refresh user profile", "userID", user.ID, "error", err)
		}
	}

	return user, nil
}

func profileChanged(user *models.User, info *types.TokenInfo) bool {
	if info.Email != "" && (user.Email == nil || *user.Email != info.Email) {
		return true
	}
	return info.Name != "" && info.Name != user.DisplayName
}

func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
