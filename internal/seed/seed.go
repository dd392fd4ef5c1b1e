// Package seed fills the database with Finnish sample recipes for
// development and manual testing.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gorm.io/gorm"

	"github.com/OPpuolitaival/recipe-example-app/models"
)

var ingredientNames = []string{
	"Maito", "Muna", "Vehnäjauho", "Sokeri", "Suola", "Voi",
	"Kananmuna", "Sipuli", "Valkosipuli", "Tomaatti", "Peruna",
	"Porkkana", "Kaali", "Paprika", "Kurkku", "Salaatti",
	"Riisi", "Pasta", "Kana", "Naudanliha", "Sianliha", "Kala",
	"Öljy", "Kerma", "Juusto", "Jogurtti", "Appelsiini", "Omena",
	"Banaani", "Mansikka", "Mustikka", "Vadelma", "Sitruuna",
	"Vaniljasokeri", "Leivinjauhe", "Hunaja", "Kaakaojauhe", "Suklaa",
	"Rypsiöljy", "Oliiviöljy",
}

type recipeTemplate struct {
	name         string
	description  string
	instructions string
	prepTime     uint
	cookTime     uint
	servings     uint
	ingredients  [][2]string // name, quantity
}

var templates = []recipeTemplate{
	{
		name:         "Pannukakku",
		description:  "Perinteinen suomalainen uunipannukakku",
		instructions: "1. Vatkaa munat ja sokeri\n2. Lisää maito ja vehnäjauho\n3. Kaada uunivuokaan\n4. Paista 200°C noin 30 minuuttia",
		prepTime:     10, cookTime: 30, servings: 4,
		ingredients: [][2]string{
			{"Muna", "3 kpl"}, {"Maito", "5 dl"}, {"Vehnäjauho", "2 dl"},
			{"Sokeri", "2 rkl"}, {"Suola", "1 tl"},
		},
	},
	{
		name:         "Makaronilaatikko",
		description:  "Koko perheen arkiruoka",
		instructions: "1. Keitä makaronit\n2. Ruskista jauheliha\n3. Sekoita munamaito\n4. Paista 175°C noin 45 minuuttia",
		prepTime:     20, cookTime: 45, servings: 6,
		ingredients: [][2]string{
			{"Pasta", "400 g"}, {"Naudanliha", "400 g"}, {"Muna", "2 kpl"},
			{"Maito", "5 dl"}, {"Suola", "1 tl"},
		},
	},
	{
		name:         "Lohikeitto",
		description:  "Kermainen lohikeitto tillillä",
		instructions: "1. Kuori ja paloittele perunat\n2. Keitä perunat ja porkkanat liemessä\n3. Lisää lohi ja kerma\n4. Hauduta 10 minuuttia",
		prepTime:     15, cookTime: 25, servings: 4,
		ingredients: [][2]string{
			{"Kala", "400 g"}, {"Peruna", "6 kpl"}, {"Porkkana", "2 kpl"},
			{"Kerma", "2 dl"}, {"Sipuli", "1 kpl"},
		},
	},
	{
		name:         "Mustikkapiirakka",
		description:  "Kesäinen mustikkapiirakka",
		instructions: "1. Vatkaa voi ja sokeri\n2. Lisää muna ja kuivat aineet\n3. Levitä taikina vuokaan ja ripottele mustikat\n4. Paista 200°C noin 25 minuuttia",
		prepTime:     20, cookTime: 25, servings: 8,
		ingredients: [][2]string{
			{"Mustikka", "3 dl"}, {"Voi", "100 g"}, {"Sokeri", "1 dl"},
			{"Muna", "1 kpl"}, {"Vehnäjauho", "2,5 dl"}, {"Leivinjauhe", "1 tl"},
		},
	},
}

// Clear removes all recipe data. Used with the -clear flag.
func Clear(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Recipe{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Ingredient{}).Error
	})
}

// Generate creates count sample recipes. The fixed templates come
// first; past them, numbered variations with random ingredient picks.
func Generate(db *gorm.DB, count int) error {
	ingredients := make(map[string]models.Ingredient, len(ingredientNames))
	for _, name := range ingredientNames {
		var ing models.Ingredient
		if err := db.Where("name = ?", name).FirstOrCreate(&ing, models.Ingredient{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to create ingredient %q: %w", name, err)
		}
		ingredients[name] = ing
	}
	slog.Info("Seed ingredients ready", "count", len(ingredients))

	for i := 0; i < count; i++ {
		tpl := templates[i%len(templates)]
		name := tpl.name
		if i >= len(templates) {
			name = fmt.Sprintf("%s %d", tpl.name, i/len(templates)+1)
		}

		recipe := models.Recipe{
			Name:         name,
			Description:  tpl.description,
			Instructions: tpl.instructions,
			PrepTime:     tpl.prepTime,
			CookTime:     tpl.cookTime,
			Servings:     tpl.servings,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&recipe).Error; err != nil {
				return err
			}
			lines := tpl.ingredients
			if i >= len(templates) {
				lines = randomLines()
			}
			for _, line := range lines {
				ri := models.RecipeIngredient{
					RecipeID:     recipe.ID,
					IngredientID: ingredients[line[0]].ID,
					Quantity:     line[1],
				}
				if err := tx.Create(&ri).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to create recipe %q: %w", name, err)
		}
	}

	slog.Info("Seed recipes created", "count", count)
	return nil
}

var quantities = []string{"1 kpl", "2 kpl", "1 dl", "2 dl", "5 dl", "100 g", "200 g", "500 g", "1 rkl", "2 rkl", "1 tl"}

// randomLines picks 3-6 distinct ingredients with arbitrary amounts.
func randomLines() [][2]string {
	n := 3 + rand.Intn(4)
	picked := rand.Perm(len(ingredientNames))[:n]
	lines := make([][2]string, 0, n)
	for _, idx := range picked {
		lines = append(lines, [2]string{
			ingredientNames[idx],
			quantities[rand.Intn(len(quantities))],
		})
	}
	return lines
}
