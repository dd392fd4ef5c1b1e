package routes

import (
	"github.com/OPpuolitaival/recipe-example-app/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the recipe pages, the HTMX fragment
// endpoints and the login flow. None of these require a session.
func RegisterPublicRoutes(r *gin.Engine) {
	// Full pages.
	r.GET("/", handlers.ListRecipesPage)
	r.GET("/recipe/new", handlers.CreateRecipePage)
	r.POST("/recipe/new", handlers.CreateRecipeHandler)
	r.GET("/recipe/:id", handlers.RecipeDetailPage)
	r.GET("/recipe/:id/edit", handlers.EditRecipePage)
	r.POST("/recipe/:id/edit", handlers.EditRecipeHandler)

	// HTMX endpoints returning HTML fragments.
	r.DELETE("/recipe/:id/delete", handlers.DeleteRecipeHandler)
	r.GET("/recipe/:id/scale", handlers.ScaleRecipeFragment)
	r.GET("/recipes/search", handlers.SearchRecipesFragment)
	r.GET("/ingredients/autocomplete", handlers.IngredientAutocompleteFragment)

	// Dynamic ingredient rows: the page posts its current form state
	// and swaps in the re-rendered formset fragment.
	r.POST("/recipe/formset/add-row", handlers.AddIngredientRowFragment)
	r.POST("/recipe/formset/remove-row", handlers.RemoveIngredientRowFragment)

	// Live updates for open list pages.
	r.GET("/ws", handlers.LiveUpdatesEndpoint)

	// Admin session.
	r.GET("/login", handlers.ShowLoginPage)
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)
}
