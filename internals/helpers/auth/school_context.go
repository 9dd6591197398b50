// internals/helpers/auth/school_context.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "sekolahku_backend/internals/helpers"
)

/* =======================================================
   SCHOOL CONTEXT (tenant) — resolusi & guard
   Urutan resolusi: klaim token → path :school_id
======================================================= */

func localsUUIDs(c *fiber.Ctx, key string) []uuid.UUID {
	switch v := c.Locals(key).(type) {
	case []uuid.UUID:
		return v
	case []string:
		out := make([]uuid.UUID, 0, len(v))
		for _, s := range v {
			if id, err := uuid.Parse(s); err == nil {
				out = append(out, id)
			}
		}
		return out
	default:
		return nil
	}
}

// GetActiveSchoolID mengambil school aktif dari klaim token.
func GetActiveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw, ok := c.Locals("school_id").(string); ok && raw != "" {
		return uuid.Parse(raw)
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "school context tidak ditemukan di token")
}

// ResolveSchoolID: klaim token dulu, fallback terakhir path :school_id (UUID).
func ResolveSchoolID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, err := GetActiveSchoolID(c); err == nil && id != uuid.Nil {
		return id, nil
	}
	raw := strings.TrimSpace(c.Params("school_id"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "school context not found in token or path")
	}
	return uuid.Parse(raw)
}

func containsSchool(ids []uuid.UUID, schoolID uuid.UUID) bool {
	for _, id := range ids {
		if id == schoolID {
			return true
		}
	}
	return false
}

// EnsureStaffSchool memastikan caller adalah staf (owner/admin/teacher) di school tsb.
func EnsureStaffSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	if containsSchool(localsUUIDs(c, "staff_school_ids"), schoolID) {
		return nil
	}
	return helper.JsonError(c, fiber.StatusForbidden, "bukan staf di school ini")
}

// EnsureAdminSchool memastikan caller adalah admin/owner di school tsb.
func EnsureAdminSchool(c *fiber.Ctx, schoolID uuid.UUID) error {
	if containsSchool(localsUUIDs(c, "admin_school_ids"), schoolID) {
		return nil
	}
	return helper.JsonError(c, fiber.StatusForbidden, "bukan admin di school ini")
}

// IsMemberSchool: caller tergabung di school (role apa pun).
func IsMemberSchool(c *fiber.Ctx, schoolID uuid.UUID) bool {
	return containsSchool(localsUUIDs(c, "member_school_ids"), schoolID)
}

// IsStaffSchool versi boolean (tanpa menulis response).
func IsStaffSchool(c *fiber.Ctx, schoolID uuid.UUID) bool {
	return containsSchool(localsUUIDs(c, "staff_school_ids"), schoolID)
}
