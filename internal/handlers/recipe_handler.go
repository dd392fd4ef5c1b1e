package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/OPpuolitaival/recipe-example-app/config"
	"github.com/OPpuolitaival/recipe-example-app/internal/forms"
	"github.com/OPpuolitaival/recipe-example-app/internal/scale"
	"github.com/OPpuolitaival/recipe-example-app/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// IngredientLine is the rendered form of one ingredient row on the
// detail page, quantity already scaled when the reader asked for a
// different serving count.
type IngredientLine struct {
	Quantity string
	Name     string
}

// ListRecipesPage renders the front page: every recipe, newest first,
// with the ingredient search box on top.
func ListRecipesPage(c *gin.Context) {
	var recipes []models.Recipe
	if err := config.DB.Order("created_at DESC").Find(&recipes).Error; err != nil {
		slog.Error("Failed to list recipes", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Reseptien haku epäonnistui."})
		return
	}
	c.HTML(http.StatusOK, "recipe_list.html", gin.H{"Recipes": recipes})
}

// RecipeDetailPage renders one recipe with its ingredient lines.
func RecipeDetailPage(c *gin.Context) {
	recipe, ok := loadRecipe(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "recipe_detail.html", gin.H{
		"Recipe":      recipe,
		"Ingredients": ingredientLines(recipe, 1),
		"Servings":    recipe.Servings,
	})
}

// ScaleRecipeFragment re-renders the detail page's ingredient list for
// the requested serving count. HTMX swaps the fragment in place.
func ScaleRecipeFragment(c *gin.Context) {
	recipe, ok := loadRecipe(c)
	if !ok {
		return
	}

	servings, err := strconv.ParseUint(c.Query("servings"), 10, 32)
	if err != nil || servings == 0 {
		servings = uint64(recipe.Servings)
	}
	factor := scale.Factor(recipe.Servings, uint(servings))

	c.HTML(http.StatusOK, "includes/ingredient_list.html", gin.H{
		"Recipe":      recipe,
		"Ingredients": ingredientLines(recipe, factor),
		"Servings":    uint(servings),
	})
}

// CreateRecipePage shows the empty recipe form with blank ingredient
// rows.
func CreateRecipePage(c *gin.Context) {
	c.HTML(http.StatusOK, "recipe_form.html", gin.H{
		"Action":  "create",
		"Form":    &forms.RecipeForm{Errors: map[string][]string{}},
		"Formset": forms.NewIngredientDocument(nil, forms.ExtraRows),
	})
}

// CreateRecipeHandler validates the posted form and formset, saves the
// recipe and its ingredient rows in one transaction and redirects to
// the new detail page. On validation errors the form is re-rendered
// with the submitted values and inline messages.
func CreateRecipeHandler(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Lomakkeen luku epäonnistui."})
		return
	}
	values := c.Request.PostForm

	form := forms.ParseRecipeForm(values)
	formSet, err := forms.ParseIngredientFormSet(values)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Lomakkeen hallintatiedot puuttuvat."})
		return
	}

	if !form.Valid() || !formSet.Valid() {
		rerenderRecipeForm(c, "create", nil, form, formSet, values)
		return
	}

	var recipe models.Recipe
	form.Apply(&recipe)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return formSet.Save(tx, &recipe)
	})
	if err != nil {
		slog.Error("Failed to create recipe", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Reseptin tallennus epäonnistui."})
		return
	}

	cacheInvalidate(searchCachePrefix, autocompleteCachePrefix)
	GlobalHub.Notify(RecipeEvent{Type: "created", RecipeID: recipe.ID, Name: recipe.Name})
	c.Redirect(http.StatusFound, "/recipe/"+strconv.FormatUint(uint64(recipe.ID), 10))
}

// EditRecipePage shows the form pre-filled with the stored recipe and
// its ingredient rows, plus blank extra rows.
func EditRecipePage(c *gin.Context) {
	recipe, ok := loadRecipe(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "recipe_form.html", gin.H{
		"Action":  "edit",
		"Recipe":  recipe,
		"Form":    forms.FromRecipe(recipe),
		"Formset": forms.NewIngredientDocument(recipe.RecipeIngredients, forms.ExtraRows),
	})
}

// EditRecipeHandler saves changes to an existing recipe and its rows.
func EditRecipeHandler(c *gin.Context) {
	recipe, ok := loadRecipe(c)
	if !ok {
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Lomakkeen luku epäonnistui."})
		return
	}
	values := c.Request.PostForm

	form := forms.ParseRecipeForm(values)
	formSet, err := forms.ParseIngredientFormSet(values)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Lomakkeen hallintatiedot puuttuvat."})
		return
	}

	if !form.Valid() || !formSet.Valid() {
		rerenderRecipeForm(c, "edit", recipe, form, formSet, values)
		return
	}

	form.Apply(recipe)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		return formSet.Save(tx, recipe)
	})
	if err != nil {
		slog.Error("Failed to update recipe", "recipe_id", recipe.ID, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Reseptin tallennus epäonnistui."})
		return
	}

	cacheInvalidate(searchCachePrefix, autocompleteCachePrefix)
	GlobalHub.Notify(RecipeEvent{Type: "updated", RecipeID: recipe.ID, Name: recipe.Name})
	c.Redirect(http.StatusFound, "/recipe/"+strconv.FormatUint(uint64(recipe.ID), 10))
}

// DeleteRecipeHandler removes a recipe and its ingredient rows. HTMX
// sends DELETE and follows the HX-Redirect header back to the list.
func DeleteRecipeHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Virheellinen reseptin tunniste"})
		return
	}

	var recipe models.Recipe
	if err := config.DB.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reseptiä ei löytynyt"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reseptin haku epäonnistui"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		slog.Error("Failed to delete recipe", "recipe_id", recipe.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reseptin poisto epäonnistui"})
		return
	}

	cacheInvalidate(searchCachePrefix, autocompleteCachePrefix)
	GlobalHub.Notify(RecipeEvent{Type: "deleted", RecipeID: recipe.ID, Name: recipe.Name})
	c.Header("HX-Redirect", "/")
	c.Status(http.StatusOK)
}

// SearchRecipesFragment returns the recipe card list filtered by
// ingredient name. Called by HTMX from the search input; an empty
// query returns every recipe.
func SearchRecipesFragment(c *gin.Context) {
	query := strings.TrimSpace(c.Query("ingredient"))

	cacheKey := searchCachePrefix + strings.ToLower(query)
	var recipes []models.Recipe
	if cacheGet(cacheKey, &recipes) {
		c.HTML(http.StatusOK, "includes/recipe_card_list.html", gin.H{"Recipes": recipes})
		return
	}

	db := config.DB.Order("recipes.created_at DESC")
	if query != "" {
		db = db.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
			Where("LOWER(ingredients.name) LIKE ?", "%"+strings.ToLower(query)+"%").
			Distinct("recipes.*")
	}
	if err := db.Find(&recipes).Error; err != nil {
		slog.Error("Recipe search failed", "query", query, "error", err)
		c.String(http.StatusInternalServerError, "Haku epäonnistui.")
		return
	}

	cacheSet(cacheKey, recipes)
	c.HTML(http.StatusOK, "includes/recipe_card_list.html", gin.H{"Recipes": recipes})
}

// --- helpers ---

// loadRecipe reads the :id parameter and loads the recipe with its
// ingredient rows. On failure it writes the response itself.
func loadRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Virheellinen reseptin tunniste."})
		return nil, false
	}

	var recipe models.Recipe
	err = config.DB.
		Preload("RecipeIngredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id ASC") }).
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"Message": "Reseptiä ei löytynyt."})
			return nil, false
		}
		slog.Error("Failed to load recipe", "recipe_id", id, "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": "Reseptin haku epäonnistui."})
		return nil, false
	}
	return &recipe, true
}

func ingredientLines(recipe *models.Recipe, factor float64) []IngredientLine {
	lines := make([]IngredientLine, 0, len(recipe.RecipeIngredients))
	for _, ri := range recipe.RecipeIngredients {
		quantity := ri.Quantity
		if factor != 1 {
			scaled, err := scale.Quantity(ri.Quantity, factor)
			if err != nil {
				slog.Warn("Failed to scale quantity", "quantity", ri.Quantity, "error", err)
			} else {
				quantity = scaled
			}
		}
		lines = append(lines, IngredientLine{Quantity: quantity, Name: ri.Ingredient.Name})
	}
	return lines
}

// rerenderRecipeForm shows the form again with the user's values and
// the validation errors, rebuilding the formset from the posted state
// so soft-deleted rows stay hidden and flagged.
func rerenderRecipeForm(c *gin.Context, action string, recipe *models.Recipe, form *forms.RecipeForm, formSet *forms.IngredientFormSet, values map[string][]string) {
	doc, err := forms.DocumentFromValues(values)
	if err != nil {
		doc = forms.NewIngredientDocument(nil, forms.ExtraRows)
	}
	forms.AttachRowErrors(doc, formSet)

	c.HTML(http.StatusOK, "recipe_form.html", gin.H{
		"Action":        action,
		"Recipe":        recipe,
		"Form":          form,
		"Formset":       doc,
		"FormsetErrors": formSet.Errors,
	})
}
