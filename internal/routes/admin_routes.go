package routes

import (
	"github.com/OPpuolitaival/recipe-example-app/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the authenticated admin surface.
func RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("", handlers.ShowAdminPage)

	api := rg.Group("/api")
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", handlers.ListIngredientsHandler)
			ingredients.POST("", handlers.CreateIngredientHandler)
			ingredients.PUT("/:id", handlers.UpdateIngredientHandler)
			ingredients.DELETE("/:id", handlers.DeleteIngredientHandler)
		}

		api.GET("/recipes/export", handlers.ExportRecipesHandler)
		api.POST("/suggest", handlers.SuggestRecipeHandler)
	}
}
