package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/OPpuolitaival/recipe-example-app/models"
)

// IngredientPrefix is the formset prefix every row field name embeds,
// e.g. "ingredients-0-quantity".
const IngredientPrefix = "ingredients"

// Management field suffixes consumed from the submitted form. The
// counter (TOTAL_FORMS) tells the parser how many rows were rendered,
// soft-deleted ones included.
const (
	TotalFormsField   = IngredientPrefix + "-TOTAL_FORMS"
	InitialFormsField = IngredientPrefix + "-INITIAL_FORMS"
	MinNumFormsField  = IngredientPrefix + "-MIN_NUM_FORMS"
	MaxNumFormsField  = IngredientPrefix + "-MAX_NUM_FORMS"
)

const (
	// MinRows is the least number of filled, non-deleted rows a valid
	// submission must carry.
	MinRows = 1
	// MaxRows bounds how many rows the parser will read, whatever the
	// submitted counter claims.
	MaxRows = 1000
	// ExtraRows is how many blank rows the form renders beyond the
	// stored ones.
	ExtraRows = 5
)

// ErrManagementForm is returned when the counter field is missing or
// mangled; without it the row count cannot be trusted.
var ErrManagementForm = errors.New("forms: ingredient management fields missing or invalid")

// IngredientRow is one bound sub-form row.
type IngredientRow struct {
	Index          int
	ID             uint // stored RecipeIngredient id; 0 for a new row
	IngredientName string
	Quantity       string
	Delete         bool

	Errors map[string][]string
}

// Persisted reports whether the row refers to a stored ingredient line.
func (r *IngredientRow) Persisted() bool {
	return r.ID != 0
}

// blank reports whether the user left the row untouched. Blank extra
// rows are skipped, not validation errors.
func (r *IngredientRow) blank() bool {
	return !r.Persisted() &&
		strings.TrimSpace(r.IngredientName) == "" &&
		strings.TrimSpace(r.Quantity) == ""
}

// IngredientFormSet is the bound collection of ingredient rows.
type IngredientFormSet struct {
	Rows []IngredientRow

	// Errors holds formset-level errors (management data, minimum row
	// count), as opposed to per-row field errors.
	Errors []string
}

// ParseIngredientFormSet binds every submitted row. Rows the user left
// blank are dropped; remaining rows are validated field by field. The
// minimum-row check ignores rows flagged for deletion.
func ParseIngredientFormSet(values url.Values) (*IngredientFormSet, error) {
	total, err := strconv.Atoi(strings.TrimSpace(values.Get(TotalFormsField)))
	if err != nil || total < 0 {
		return nil, ErrManagementForm
	}
	if total > MaxRows {
		total = MaxRows
	}

	fs := &IngredientFormSet{}
	for i := 0; i < total; i++ {
		row := IngredientRow{
			Index:          i,
			IngredientName: values.Get(rowField(i, "ingredient_name")),
			Quantity:       values.Get(rowField(i, "quantity")),
			Delete:         values.Get(rowField(i, "DELETE")) != "",
			Errors:         make(map[string][]string),
		}
		if idRaw := strings.TrimSpace(values.Get(rowField(i, "id"))); idRaw != "" {
			id, err := strconv.ParseUint(idRaw, 10, 32)
			if err != nil {
				row.Errors["id"] = append(row.Errors["id"], "Virheellinen rivin tunniste.")
			} else {
				row.ID = uint(id)
			}
		}
		if row.blank() {
			continue
		}
		row.validate()
		fs.Rows = append(fs.Rows, row)
	}

	kept := 0
	for _, r := range fs.Rows {
		if !r.Delete {
			kept++
		}
	}
	if kept < MinRows {
		fs.Errors = append(fs.Errors, "Lisää vähintään yksi raaka-aine.")
	}

	return fs, nil
}

func (r *IngredientRow) validate() {
	if strings.TrimSpace(r.IngredientName) == "" {
		r.Errors["ingredient_name"] = append(r.Errors["ingredient_name"], "Raaka-aineen nimi ei voi olla tyhjä.")
	}
	if strings.TrimSpace(r.Quantity) == "" {
		r.Errors["quantity"] = append(r.Errors["quantity"], "Määrä ei voi olla tyhjä.")
	} else if utf8.RuneCountInString(r.Quantity) > 50 {
		r.Errors["quantity"] = append(r.Errors["quantity"], "Määrä on liian pitkä (enintään 50 merkkiä).")
	}
}

// Valid reports whether the formset and all its rows bound cleanly.
func (fs *IngredientFormSet) Valid() bool {
	if len(fs.Errors) > 0 {
		return false
	}
	for _, r := range fs.Rows {
		if len(r.Errors) > 0 {
			return false
		}
	}
	return true
}

// Save applies the bound rows to the recipe inside the caller's
// transaction: deletes flagged rows, updates persisted ones and
// creates the rest, getting or creating each Ingredient by its
// normalized name.
func (fs *IngredientFormSet) Save(tx *gorm.DB, recipe *models.Recipe) error {
	for i := range fs.Rows {
		row := &fs.Rows[i]

		if row.Delete {
			if row.Persisted() {
				if err := tx.Where("recipe_id = ?", recipe.ID).
					Delete(&models.RecipeIngredient{}, row.ID).Error; err != nil {
					return fmt.Errorf("failed to delete ingredient row %d: %w", row.ID, err)
				}
			}
			continue
		}

		name := NormalizeIngredientName(row.IngredientName)
		var ingredient models.Ingredient
		if err := tx.Where("name = ?", name).
			FirstOrCreate(&ingredient, models.Ingredient{Name: name}).Error; err != nil {
			return fmt.Errorf("failed to get or create ingredient %q: %w", name, err)
		}

		if row.Persisted() {
			err := tx.Model(&models.RecipeIngredient{}).
				Where("id = ? AND recipe_id = ?", row.ID, recipe.ID).
				Updates(map[string]interface{}{
					"ingredient_id": ingredient.ID,
					"quantity":      strings.TrimSpace(row.Quantity),
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update ingredient row %d: %w", row.ID, err)
			}
			continue
		}

		line := models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredient.ID,
			Quantity:     strings.TrimSpace(row.Quantity),
		}
		if err := tx.Create(&line).Error; err != nil {
			return fmt.Errorf("failed to create ingredient row: %w", err)
		}
	}
	return nil
}

// NormalizeIngredientName trims the name and capitalizes its first
// rune, lowercasing the rest, so "maito", "MAITO" and " Maito " all
// resolve to the same stored ingredient.
func NormalizeIngredientName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

func rowField(index int, field string) string {
	return fmt.Sprintf("%s-%d-%s", IngredientPrefix, index, field)
}
