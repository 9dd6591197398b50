// internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/constants"
	authDTO "sekolahku_backend/internals/features/users/auth/dto"
	authModel "sekolahku_backend/internals/features/users/auth/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

const (
	accessTokenTTL  = 2 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

/* =======================================================
   REGISTER / LOGIN / REFRESH / LOGOUT
======================================================= */

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var in authDTO.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing userModel.UserModel
	if err := ctl.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "email sudah terdaftar")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal hash password")
	}

	u := userModel.UserModel{
		UserName: strings.TrimSpace(in.UserName),
		Email:    email,
		Password: string(hashed),
		Roles:    []string{constants.RoleParent}, // role default; staf ditetapkan admin
		IsActive: true,
	}
	if err := ctl.DB.Create(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "registrasi berhasil", authDTO.UserResponse{
		ID:       u.ID.String(),
		UserName: u.UserName,
		Email:    u.Email,
		Roles:    u.Roles,
	})
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var in authDTO.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.Validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var u userModel.UserModel
	if err := ctl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(in.Email))).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "email atau password salah")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "akun dinonaktifkan")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "email atau password salah")
	}

	access, refresh, err := ctl.issueTokens(&u)
	if err != nil {
		log.Println("[ERROR] issueTokens:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal membuat token")
	}

	return helper.JsonOK(c, "login berhasil", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: authDTO.UserResponse{
			ID:       u.ID.String(),
			UserName: u.UserName,
			Email:    u.Email,
			Roles:    u.Roles,
		},
	})
}

// POST /api/auth/refresh
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var in authDTO.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if strings.TrimSpace(in.RefreshToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "refresh_token is required")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(in.RefreshToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTRefreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "refresh token tidak valid")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "bukan refresh token")
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "refresh token tidak valid")
	}

	var u userModel.UserModel
	if err := ctl.DB.First(&u, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "user tidak ditemukan")
	}
	if !u.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "akun dinonaktifkan")
	}

	access, refresh, err := ctl.issueTokens(&u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "gagal membuat token")
	}

	return helper.JsonOK(c, "token diperbarui", authDTO.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: authDTO.UserResponse{
			ID:       u.ID.String(),
			UserName: u.UserName,
			Email:    u.Email,
			Roles:    u.Roles,
		},
	})
}

// POST /api/auth/logout — blacklist access token yang dipakai
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "token tidak ditemukan")
	}
	tokenString := strings.TrimSpace(parts[1])

	// simpan ke blacklist sampai exp token
	expiredAt := time.Now().Add(accessTokenTTL)
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	}); err == nil {
		if expFloat, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(expFloat), 0)
		}
	}

	entry := authModel.TokenBlacklist{Token: tokenString, ExpiredAt: expiredAt}
	if err := ctl.DB.Create(&entry).Error; err != nil {
		// token sudah pernah di-blacklist → tetap sukses
		log.Println("[WARN] blacklist insert:", err)
	}

	return helper.JsonOK(c, "logout berhasil", nil)
}

/* =======================================================
   TOKEN ISSUANCE (klaim school per tingkat akses)
======================================================= */

func (ctl *AuthController) issueTokens(u *userModel.UserModel) (string, string, error) {
	memberIDs, staffIDs, adminIDs, activeID, err := ctl.collectSchoolClaims(u.ID)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	accessClaims := jwt.MapClaims{
		"typ":               "access",
		"user_id":           u.ID.String(),
		"user_name":         u.UserName,
		"roles":             []string(u.Roles),
		"member_school_ids": memberIDs,
		"staff_school_ids":  staffIDs,
		"admin_school_ids":  adminIDs,
		"iat":               now.Unix(),
		"exp":               now.Add(accessTokenTTL).Unix(),
	}
	if activeID != "" {
		accessClaims["school_id"] = activeID
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"typ":     "refresh",
		"user_id": u.ID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(refreshTokenTTL).Unix(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// collectSchoolClaims membangun daftar school per tingkat akses dari school_members.
func (ctl *AuthController) collectSchoolClaims(userID uuid.UUID) (member, staff, admin []string, active string, err error) {
	var rows []userModel.SchoolMemberModel
	if err = ctl.DB.
		Where("school_member_user_id = ? AND school_member_deleted_at IS NULL", userID).
		Find(&rows).Error; err != nil {
		return
	}

	seen := map[string]struct{}{}
	for _, r := range rows {
		id := r.SchoolMemberSchoolID.String()
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			member = append(member, id)
		}
		if constants.IsStaffRole(r.SchoolMemberRole) {
			staff = append(staff, id)
		}
		if constants.IsAdminRole(r.SchoolMemberRole) {
			admin = append(admin, id)
		}
	}
	// school aktif = school pertama (single-school user memang cuma satu)
	if len(member) > 0 {
		active = member[0]
	}
	return
}
