package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"little-lemon/domain"
	"little-lemon/internal/api/presenters"
	"little-lemon/pkg/access"
	"little-lemon/pkg/jwt"
)

const (
	LocalsUserID    = "user_id"
	LocalsPrincipal = "principal"
)

type (
	// RoleLookup returns the staff groups a user currently belongs to.
	RoleLookup interface {
		GetRoles(ctx context.Context, userID string) ([]string, error)
	}

	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
		AnonThrottle(max int, window time.Duration) fiber.Handler
		UserThrottle(max int, window time.Duration) fiber.Handler
	}

	middleware struct {
		roleLookup RoleLookup
	}
)

func NewMiddleware(roleLookup RoleLookup) Middleware {
	return &middleware{roleLookup: roleLookup}
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	for _, scheme := range []string{"Bearer ", "Token "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

// authenticate resolves the token into a principal. The role snapshot is
// taken once here and used for the rest of the request.
func (m *middleware) authenticate(c *fiber.Ctx, jwtService jwt.JWTService, token string) error {
	userID, err := jwtService.GetUserIDByToken(token)
	if err != nil {
		return err
	}

	roles, err := m.roleLookup.GetRoles(c.UserContext(), userID)
	if err != nil {
		log.Errorf("failed to load roles for user %s: %v", userID, err)
		return err
	}

	c.Locals(LocalsUserID, userID)
	c.Locals(LocalsPrincipal, access.NewPrincipal(userID, roles))
	return nil
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ServiceErrorResponse(c, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects
// a token that is present and invalid.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}
		if err := m.authenticate(c, jwtService, token); err != nil {
			return presenters.ServiceErrorResponse(c, domain.MessageFailedTokenInvalid, err)
		}
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func tooManyRequests(c *fiber.Ctx) error {
	return presenters.ErrorResponse(c, fiber.StatusTooManyRequests, "Request was throttled.", nil)
}

func (m *middleware) AnonThrottle(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   window,
		KeyGenerator: func(c *fiber.Ctx) string { return "anon:" + c.IP() },
		LimitReached: tooManyRequests,
	})
}

// UserThrottle must run after AuthMiddleware.
func (m *middleware) UserThrottle(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, ok := c.Locals(LocalsUserID).(string); ok {
				return "user:" + id
			}
			return "anon:" + c.IP()
		},
		LimitReached: tooManyRequests,
	})
}

// GetPrincipal returns the caller set by the auth middlewares, or an
// anonymous principal.
func GetPrincipal(c *fiber.Ctx) access.Principal {
	if p, ok := c.Locals(LocalsPrincipal).(access.Principal); ok {
		return p
	}
	return access.Anonymous()
}
