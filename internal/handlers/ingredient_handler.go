package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/internal/forms"
	"github.com/OPpuolitaival/recipe-example-app/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const autocompleteLimit = 10

// IngredientAutocompleteFragment returns datalist options for the
// ingredient name inputs. HTMX calls it while the user types.
func IngredientAutocompleteFragment(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.HTML(http.StatusOK, "includes/ingredient_options.html", gin.H{"Ingredients": []models.Ingredient{}})
		return
	}

	cacheKey := autocompleteCachePrefix + strings.ToLower(query)
	var ingredients []models.Ingredient
	if !cacheGet(cacheKey, &ingredients) {
		err := config.DB.
			Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
			Order("name ASC").
			Limit(autocompleteLimit).
			Find(&ingredients).Error
		if err != nil {
			c.String(http.StatusInternalServerError, "Haku epäonnistui.")
			return
		}
		cacheSet(cacheKey, ingredients)
	}

	c.HTML(http.StatusOK, "includes/ingredient_options.html", gin.H{"Ingredients": ingredients})
}

// --- Admin ingredient maintenance (JSON API) ---

// IngredientInput is the create/update payload.
type IngredientInput struct {
	Name string `json:"name" binding:"required"`
}

// ListIngredientsHandler returns ingredients alphabetically. Supports
// `?all=true` for dropdowns, otherwise paginated.
func ListIngredientsHandler(c *gin.Context) {
	query := config.DB.Order("name ASC")

	var ingredients []models.Ingredient
	if c.Query("all") == "true" {
		if err := query.Find(&ingredients).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch ingredients"})
			return
		}
		c.JSON(http.StatusOK, ingredients)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Ingredient{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&ingredients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch ingredients"})
		return
	}
	if ingredients == nil {
		ingredients = make([]models.Ingredient, 0)
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, ingredients, totalRows))
}

// CreateIngredientHandler adds a new ingredient with a normalized name.
func CreateIngredientHandler(c *gin.Context) {
	var input IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := forms.NormalizeIngredientName(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name cannot be empty"})
		return
	}

	ingredient := models.Ingredient{Name: name}
	if err := config.DB.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ingredient already exists"})
		return
	}
	cacheInvalidate(autocompleteCachePrefix)
	c.JSON(http.StatusCreated, ingredient)
}

// UpdateIngredientHandler renames an ingredient everywhere at once:
// every recipe referencing it sees the new name.
func UpdateIngredientHandler(c *gin.Context) {
	var ingredient models.Ingredient
	if err := config.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	var input IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient.Name = forms.NormalizeIngredientName(input.Name)
	if ingredient.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name cannot be empty"})
		return
	}
	if err := config.DB.Save(&ingredient).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ingredient already exists"})
		return
	}
	cacheInvalidate(searchCachePrefix, autocompleteCachePrefix)
	c.JSON(http.StatusOK, ingredient)
}

// DeleteIngredientHandler removes an ingredient that no recipe uses.
func DeleteIngredientHandler(c *gin.Context) {
	var ingredient models.Ingredient
	if err := config.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch ingredient"})
		return
	}

	var inUse int64
	config.DB.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", ingredient.ID).Count(&inUse)
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Ingredient is used by recipes and cannot be deleted"})
		return
	}

	if err := config.DB.Delete(&ingredient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}
	cacheInvalidate(autocompleteCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}
