package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Singh-Prajwal/rental/pkg/util"
)

const adminKey = "auth_admin_id"

// AuthMiddleware validates bearer tokens for administrative routes. The
// token issuer is an external collaborator; only the signed admin claim is
// checked here.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAdmin enforces an admin bearer token.
func (m *AuthMiddleware) RequireAdmin(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.Role != RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}

	c.Locals(adminKey, claims.SubjectID)
	return c.Next()
}

// AdminFromContext retrieves the authenticated admin id.
func AdminFromContext(c *fiber.Ctx) (string, bool) {
	val := c.Locals(adminKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
