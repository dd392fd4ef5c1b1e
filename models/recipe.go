package models

import "gorm.io/gorm"

// Recipe represents a recipe in the database.
//
// Listing order is newest first; the ingredient rows live in the
// RecipeIngredient join model so the same ingredient can be shared
// between recipes and searched across them.
type Recipe struct {
	gorm.Model
	Name         string `json:"name" gorm:"size:200;not null"`
	Description  string `json:"description"`
	Instructions string `json:"instructions" gorm:"not null"`
	PrepTime     uint   `json:"prepTime"` // minutes
	CookTime     uint   `json:"cookTime"` // minutes
	Servings     uint   `json:"servings"`

	RecipeIngredients []RecipeIngredient `json:"recipeIngredients,omitempty" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TotalTime returns prep plus cook time in minutes.
func (r *Recipe) TotalTime() uint {
	return r.PrepTime + r.CookTime
}
