// Package forms binds and validates the recipe form and its inline
// ingredient formset from posted values, using the same flat field
// naming the rendered page carries: plain names for the recipe fields,
// "ingredients-<i>-<field>" plus management fields for the rows.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/OPpuolitaival/recipe-example-app/models"
)

// RecipeForm carries the bound recipe fields and per-field validation
// errors keyed by field name, for re-rendering next to the inputs.
type RecipeForm struct {
	Name         string
	Description  string
	Instructions string
	PrepTime     uint
	CookTime     uint
	Servings     uint

	Errors map[string][]string
}

// ParseRecipeForm binds and validates the top-level recipe fields.
func ParseRecipeForm(values url.Values) *RecipeForm {
	f := &RecipeForm{
		Name:         strings.TrimSpace(values.Get("name")),
		Description:  values.Get("description"),
		Instructions: values.Get("instructions"),
		Errors:       make(map[string][]string),
	}

	if f.Name == "" {
		f.addError("name", "Reseptin nimi ei voi olla tyhjä.")
	} else if len(f.Name) > 200 {
		f.addError("name", "Reseptin nimi on liian pitkä (enintään 200 merkkiä).")
	}
	if strings.TrimSpace(f.Instructions) == "" {
		f.addError("instructions", "Valmistusohjeet eivät voi olla tyhjät.")
	}

	f.PrepTime = f.nonNegative(values, "prep_time", "Valmistusaika ei voi olla negatiivinen.")
	f.CookTime = f.nonNegative(values, "cook_time", "Kypsennysaika ei voi olla negatiivinen.")
	f.Servings = f.nonNegative(values, "servings", "Annosten määrä ei kelpaa.")

	return f
}

// FromRecipe pre-fills an unbound form from a stored recipe, for the
// edit page's initial GET.
func FromRecipe(r *models.Recipe) *RecipeForm {
	return &RecipeForm{
		Name:         r.Name,
		Description:  r.Description,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Errors:       make(map[string][]string),
	}
}

// Valid reports whether binding produced no errors.
func (f *RecipeForm) Valid() bool {
	return len(f.Errors) == 0
}

// Apply copies the bound values onto the model.
func (f *RecipeForm) Apply(r *models.Recipe) {
	r.Name = f.Name
	r.Description = f.Description
	r.Instructions = f.Instructions
	r.PrepTime = f.PrepTime
	r.CookTime = f.CookTime
	r.Servings = f.Servings
}

// FieldErrors returns the errors for one field, for templates.
func (f *RecipeForm) FieldErrors(field string) []string {
	return f.Errors[field]
}

func (f *RecipeForm) addError(field, msg string) {
	f.Errors[field] = append(f.Errors[field], msg)
}

// nonNegative parses a required non-negative integer field. HTML
// number inputs submit plain digits; a leading minus or garbage both
// fail the same way.
func (f *RecipeForm) nonNegative(values url.Values, field, msg string) uint {
	raw := strings.TrimSpace(values.Get(field))
	if raw == "" {
		f.addError(field, "Tämä kenttä vaaditaan.")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		f.addError(field, msg)
		return 0
	}
	return uint(n)
}
