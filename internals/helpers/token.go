package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Ambil user_id dari locals (sudah diisi AuthMiddleware)
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("user_id di token bukan UUID valid")
	}
	return id, nil
}

// Ambil daftar role dari locals
func GetRolesFromToken(c *fiber.Ctx) []string {
	if roles, ok := c.Locals("user_roles").([]string); ok {
		return roles
	}
	return nil
}

func HasRole(c *fiber.Ctx, role string) bool {
	for _, r := range GetRolesFromToken(c) {
		if r == role {
			return true
		}
	}
	return false
}
