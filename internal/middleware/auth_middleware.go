package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Locals keys set by Auth.
const (
	LocalUserID    = "user_id"
	LocalLoginName = "login_name"
	LocalRoles     = "roles"
)

// Auth validates the bearer token signed with secret and stores the claims in
// the request locals.
func Auth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		// 1. Ambil token dari Header Authorization
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing token"})
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// 2. Parse dan Validasi Token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		// 3. Simpan claims ke Context
		claims := token.Claims.(jwt.MapClaims)
		id, ok := claims[LocalUserID].(float64)
		if !ok || id <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token subject"})
		}
		c.Locals(LocalUserID, uint(id))
		c.Locals(LocalLoginName, claims[LocalLoginName])
		c.Locals(LocalRoles, roleClaims(claims[LocalRoles]))

		return c.Next()
	}
}

func roleClaims(v any) []string {
	raw, _ := v.([]any)
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// UserID returns the authenticated person's ID, 0 outside of Auth.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalUserID).(uint)
	return id
}
