// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sekolahku_backend/internals/features/users/auth/controller"
)

// AuthRoutes: endpoint auth yang butuh token.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	api.Post("/auth/logout", ctl.Logout)
}
