package models

import "gorm.io/gorm"

// Ingredient represents a single ingredient name.
//
// Ingredients are stored separately from recipes to avoid duplication
// and to allow searching recipes by ingredient.
type Ingredient struct {
	gorm.Model
	Name string `json:"name" gorm:"size:100;unique;not null"`
}
