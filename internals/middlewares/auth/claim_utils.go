package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

// extractBearerToken mengambil token dari header Authorization (atau cookie access_token)
func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errors.New("format Authorization header tidak valid")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookie := c.Cookies("access_token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("token tidak ditemukan")
}

// validateTokenExpiry memvalidasi klaim exp dengan sedikit leeway (toleransi clock skew)
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("klaim exp tidak ada")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("klaim exp bukan angka")
	}
	expTime := time.Unix(int64(expFloat), 0)
	if time.Now().After(expTime.Add(leeway)) {
		return errors.New("token kadaluarsa")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"].(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("klaim user_id tidak ada")
	}
	return uuid.Parse(raw)
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var u userModel.UserModel
	if err := db.Select("id", "is_active").First(&u, "id = ?", userID).Error; err != nil {
		return err
	}
	if !u.IsActive {
		return errors.New("user nonaktif")
	}
	return nil
}

func claimStrings(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// storeBasicClaimsToLocals menyimpan user_name & roles ke locals
func storeBasicClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if name, ok := claims["user_name"].(string); ok {
		c.Locals("user_name", name)
	}
	if roles := claimStrings(claims, "roles"); len(roles) > 0 {
		c.Locals("user_roles", roles)
	}
}

// storeSchoolIDsToLocals menyimpan daftar school per tingkat akses + school aktif
func storeSchoolIDsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if id, ok := claims["school_id"].(string); ok && id != "" {
		c.Locals("school_id", id)
	}
	if ids := claimStrings(claims, "member_school_ids"); len(ids) > 0 {
		c.Locals("member_school_ids", ids)
	}
	if ids := claimStrings(claims, "staff_school_ids"); len(ids) > 0 {
		c.Locals("staff_school_ids", ids)
	}
	if ids := claimStrings(claims, "admin_school_ids"); len(ids) > 0 {
		c.Locals("admin_school_ids", ids)
	}
}
