package models

import (
	"fmt"

	"gorm.io/gorm"
)

// RecipeIngredient connects a recipe with an ingredient and carries the
// free-form quantity, e.g. "2 dl" or "500 g". A recipe lists each
// ingredient at most once.
type RecipeIngredient struct {
	gorm.Model
	RecipeID     uint   `json:"recipeId" gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	IngredientID uint   `json:"ingredientId" gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	Quantity     string `json:"quantity" gorm:"size:50"`

	Ingredient Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID"`
}

func (ri *RecipeIngredient) String() string {
	return fmt.Sprintf("%s %s", ri.Quantity, ri.Ingredient.Name)
}
