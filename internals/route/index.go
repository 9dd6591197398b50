// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PublicRoutes...")
	routeDetails.PublicRoutes(app, db)

	// ===================== AUTHENTICATED =====================
	// Satu group ber-JWT; pembagian staff/admin ditegakkan per handler
	// lewat klaim school_ids di token.
	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	log.Println("[INFO] Setting up SchoolRoutes...")
	routeDetails.SchoolRoutes(api, db)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(api, db)
}
