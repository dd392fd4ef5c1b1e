package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/OPpuolitaival/recipe-example-app/internal/formset"
	"github.com/OPpuolitaival/recipe-example-app/models"
)

// The rendering half of the formset contract: these builders produce
// the formset document the templates draw and the row endpoints
// manipulate, from either stored rows or a posted form.

func ingredientField(index int, suffix string, typ formset.FieldType, label string) *formset.Field {
	name := fmt.Sprintf("%s-%d-%s", IngredientPrefix, index, suffix)
	f := &formset.Field{Name: name, ID: "id_" + name, Type: typ}
	if label != "" {
		f.Label = &formset.Label{For: f.ID, Text: label}
	}
	return f
}

func ingredientBlock(index int) *formset.Block {
	return &formset.Block{
		Visible:       true,
		RemoveControl: &formset.Control{ID: fmt.Sprintf("remove-%s-%d-row", IngredientPrefix, index)},
		Fields: []*formset.Field{
			ingredientField(index, "ingredient_name", formset.FieldText, "Raaka-aine"),
			ingredientField(index, "quantity", formset.FieldText, "Määrä"),
			ingredientField(index, "id", formset.FieldHidden, ""),
			ingredientField(index, "DELETE", formset.FieldCheckbox, ""),
		},
	}
}

func counterField(total int) *formset.Field {
	return &formset.Field{
		Name:  TotalFormsField,
		ID:    "id_" + TotalFormsField,
		Type:  formset.FieldHidden,
		Value: strconv.Itoa(total),
	}
}

// NewIngredientDocument renders the formset for a GET: one filled
// block per stored ingredient line followed by extra blank rows.
func NewIngredientDocument(lines []models.RecipeIngredient, extra int) *formset.Document {
	container := &formset.Container{}
	idx := 0
	for _, line := range lines {
		b := ingredientBlock(idx)
		b.Fields[0].Value = line.Ingredient.Name
		b.Fields[1].Value = line.Quantity
		b.Fields[2].Value = strconv.FormatUint(uint64(line.ID), 10)
		container.Blocks = append(container.Blocks, b)
		idx++
	}
	for i := 0; i < extra; i++ {
		container.Blocks = append(container.Blocks, ingredientBlock(idx))
		idx++
	}

	return &formset.Document{
		Container:  container,
		AddTrigger: &formset.Control{ID: "add-ingredient-row"},
		Counter:    counterField(len(container.Blocks)),
	}
}

// DocumentFromValues reconstructs the rendered formset from a posted
// form, blank extra rows included, so the row endpoints can run the
// synchronizer against the exact page state the browser sent. A
// persisted row whose deletion flag arrived checked comes back hidden.
func DocumentFromValues(values url.Values) (*formset.Document, error) {
	total, err := strconv.Atoi(strings.TrimSpace(values.Get(TotalFormsField)))
	if err != nil || total < 0 {
		return nil, ErrManagementForm
	}
	if total > MaxRows {
		total = MaxRows
	}

	container := &formset.Container{}
	for i := 0; i < total; i++ {
		b := ingredientBlock(i)
		b.Fields[0].Value = values.Get(rowField(i, "ingredient_name"))
		b.Fields[1].Value = values.Get(rowField(i, "quantity"))
		b.Fields[2].Value = strings.TrimSpace(values.Get(rowField(i, "id")))
		b.Fields[3].Checked = values.Get(rowField(i, "DELETE")) != ""
		if b.IsPersisted() && b.IsMarkedDeleted() {
			b.Visible = false
		}
		container.Blocks = append(container.Blocks, b)
	}

	return &formset.Document{
		Container:  container,
		AddTrigger: &formset.Control{ID: "add-ingredient-row"},
		Counter:    counterField(total),
	}, nil
}

// AttachRowErrors copies per-row validation errors from a bound
// formset onto the matching document fields so the template renders
// them inline next to the inputs.
func AttachRowErrors(doc *formset.Document, fs *IngredientFormSet) {
	byIndex := make(map[int]*IngredientRow, len(fs.Rows))
	for i := range fs.Rows {
		byIndex[fs.Rows[i].Index] = &fs.Rows[i]
	}

	for _, b := range doc.Container.Blocks {
		idx, ok := b.Index()
		if !ok {
			continue
		}
		row, ok := byIndex[idx]
		if !ok {
			continue
		}
		for _, f := range b.Fields {
			suffix := f.Name[strings.LastIndex(f.Name, "-")+1:]
			if errs := row.Errors[suffix]; len(errs) > 0 {
				f.Errors = append(f.Errors, errs...)
			}
		}
	}
}
