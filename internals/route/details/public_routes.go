// file: internals/route/details/public_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sekolahku_backend/internals/features/users/auth/controller"
	schoolController "sekolahku_backend/internals/features/school/schools/controller"
)

// PublicRoutes: endpoint tanpa bearer token.
func PublicRoutes(app *fiber.App, db *gorm.DB) {
	authCtl := &authController.AuthController{DB: db}
	schoolCtl := &schoolController.SchoolHandler{DB: db}

	auth := app.Group("/api/auth")
	auth.Post("/register", authCtl.Register)
	auth.Post("/login", authCtl.Login)
	auth.Post("/refresh", authCtl.Refresh)

	app.Get("/api/schools/:slug", schoolCtl.GetSchoolBySlug)
}
