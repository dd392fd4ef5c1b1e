package routes

import (
	"github.com/OPpuolitaival/recipe-example-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every route of the application.
func SetupRoutes(r *gin.Engine) {
	// Public surface: recipe pages, HTMX fragments, login.
	RegisterPublicRoutes(r)

	// The admin surface requires a valid session token.
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	RegisterAdminRoutes(admin)
}
