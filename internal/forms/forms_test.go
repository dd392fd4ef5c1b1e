package forms

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipeValues() url.Values {
	return url.Values{
		"name":         {"Pannukakku"},
		"description":  {"Perinteinen uunipannukakku"},
		"instructions": {"Vatkaa, sekoita, paista."},
		"prep_time":    {"10"},
		"cook_time":    {"30"},
		"servings":     {"4"},
	}
}

func TestParseRecipeForm(t *testing.T) {
	t.Run("valid data", func(t *testing.T) {
		f := ParseRecipeForm(validRecipeValues())
		assert.True(t, f.Valid())
		assert.Equal(t, "Pannukakku", f.Name)
		assert.Equal(t, uint(10), f.PrepTime)
		assert.Equal(t, uint(30), f.CookTime)
		assert.Equal(t, uint(4), f.Servings)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		v := validRecipeValues()
		v.Set("name", "  Pannukakku  ")
		f := ParseRecipeForm(v)
		assert.True(t, f.Valid())
		assert.Equal(t, "Pannukakku", f.Name)
	})

	t.Run("whitespace-only name rejected", func(t *testing.T) {
		v := validRecipeValues()
		v.Set("name", "   ")
		f := ParseRecipeForm(v)
		assert.False(t, f.Valid())
		assert.NotEmpty(t, f.FieldErrors("name"))
	})

	t.Run("missing instructions rejected", func(t *testing.T) {
		v := validRecipeValues()
		v.Del("instructions")
		f := ParseRecipeForm(v)
		assert.False(t, f.Valid())
		assert.NotEmpty(t, f.FieldErrors("instructions"))
	})

	t.Run("negative times rejected", func(t *testing.T) {
		v := validRecipeValues()
		v.Set("prep_time", "-5")
		v.Set("cook_time", "-15")
		f := ParseRecipeForm(v)
		assert.False(t, f.Valid())
		assert.NotEmpty(t, f.FieldErrors("prep_time"))
		assert.NotEmpty(t, f.FieldErrors("cook_time"))
	})

	t.Run("non-numeric time rejected", func(t *testing.T) {
		v := validRecipeValues()
		v.Set("prep_time", "kymmenen")
		f := ParseRecipeForm(v)
		assert.False(t, f.Valid())
		assert.NotEmpty(t, f.FieldErrors("prep_time"))
	})

	t.Run("blank description allowed", func(t *testing.T) {
		v := validRecipeValues()
		v.Set("description", "")
		f := ParseRecipeForm(v)
		assert.True(t, f.Valid())
	})
}

func formsetValues(total int) url.Values {
	v := url.Values{}
	v.Set(TotalFormsField, strconv.Itoa(total))
	v.Set(InitialFormsField, "0")
	v.Set(MinNumFormsField, "1")
	v.Set(MaxNumFormsField, "1000")
	return v
}

func setRow(v url.Values, i int, name, quantity, id string) {
	v.Set(rowField(i, "ingredient_name"), name)
	v.Set(rowField(i, "quantity"), quantity)
	v.Set(rowField(i, "id"), id)
}

func TestParseIngredientFormSet(t *testing.T) {
	t.Run("two filled rows", func(t *testing.T) {
		v := formsetValues(0)
		v.Set(TotalFormsField, "2")
		setRow(v, 0, "Maito", "5 dl", "")
		setRow(v, 1, "Muna", "3 kpl", "")

		fs, err := ParseIngredientFormSet(v)
		require.NoError(t, err)
		assert.True(t, fs.Valid())
		require.Len(t, fs.Rows, 2)
		assert.Equal(t, "Maito", fs.Rows[0].IngredientName)
		assert.Equal(t, "3 kpl", fs.Rows[1].Quantity)
		assert.False(t, fs.Rows[0].Persisted())
	})

	t.Run("blank extra rows are skipped", func(t *testing.T) {
		v := formsetValues(0)
		v.Set(TotalFormsField, "6")
		setRow(v, 0, "Maito", "5 dl", "")
		for i := 1; i < 6; i++ {
			setRow(v, i, "", "", "")
		}

		fs, err := ParseIngredientFormSet(v)
		require.NoError(t, err)
		assert.True(t, fs.Valid())
		assert.Len(t, fs.Rows, 1)
	})

	t.Run("partially filled row is an error", func(t *testing.T) {
		v := formsetValues(0)
		v.Set(TotalFormsField, "1")
		setRow(v, 0, "Maito", "", "")

		fs, err := ParseIngredientFormSet(v)
		require.NoError(t, err)
		assert.False(t, fs.Valid())
		assert.NotEmpty(t, fs.Rows[0].Errors["quantity"])
	})

	t.Run("at least one surviving row required", func(t *testing.T) {
		v := formsetValues(0)
		v.Set(TotalFormsField, "1")
		setRow(v, 0, "Maito", "5 dl", "12")
		v.Set(rowField(0, "DELETE"), "on")

		fs, err := ParseIngredientFormSet(v)
		require.NoError(t, err)
		assert.False(t, fs.Valid())
		assert.NotEmpty(t, fs.Errors)
	})

	t.Run("persisted row with delete flag", func(t *testing.T) {
		v := formsetValues(0)
		v.Set(TotalFormsField, "2")
		setRow(v, 0, "Maito", "5 dl", "12")
		v.Set(rowField(0, "DELETE"), "on")
		setRow(v, 1, "Muna", "3 kpl", "")

		fs, err := ParseIngredientFormSet(v)
		require.NoError(t, err)
		assert.True(t, fs.Valid())
		require.Len(t, fs.Rows, 2)
		assert.True(t, fs.Rows[0].Delete)
		assert.Equal(t, uint(12), fs.Rows[0].ID)
	})

	t.Run("missing management data", func(t *testing.T) {
		_, err := ParseIngredientFormSet(url.Values{})
		assert.ErrorIs(t, err, ErrManagementForm)
	})

	t.Run("mangled counter", func(t *testing.T) {
		v := url.Values{}
		v.Set(TotalFormsField, "paljon")
		_, err := ParseIngredientFormSet(v)
		assert.ErrorIs(t, err, ErrManagementForm)
	})
}

func TestNormalizeIngredientName(t *testing.T) {
	assert.Equal(t, "Maito", NormalizeIngredientName("maito"))
	assert.Equal(t, "Maito", NormalizeIngredientName("MAITO"))
	assert.Equal(t, "Maito", NormalizeIngredientName("  maito  "))
	assert.Equal(t, "Öljy", NormalizeIngredientName("öljy"))
	assert.Equal(t, "", NormalizeIngredientName("   "))
}

func TestDocumentFromValues(t *testing.T) {
	v := formsetValues(0)
	v.Set(TotalFormsField, "3")
	setRow(v, 0, "Maito", "5 dl", "17")
	v.Set(rowField(0, "DELETE"), "on")
	setRow(v, 1, "Muna", "3 kpl", "18")
	setRow(v, 2, "", "", "")

	doc, err := DocumentFromValues(v)
	require.NoError(t, err)
	require.Len(t, doc.Container.Blocks, 3)
	assert.Equal(t, "3", doc.Counter.Value)

	// Soft-deleted persisted row comes back hidden with its flag set.
	assert.False(t, doc.Container.Blocks[0].Visible)
	assert.True(t, doc.Container.Blocks[0].IsMarkedDeleted())
	assert.True(t, doc.Container.Blocks[1].Visible)
	assert.Equal(t, "Muna", doc.Container.Blocks[1].Fields[0].Value)
	// The blank extra row is a real attached block.
	assert.True(t, doc.Container.Blocks[2].Visible)
	assert.Equal(t, "", doc.Container.Blocks[2].Fields[0].Value)
}

func TestNewIngredientDocumentCounterCoversExtras(t *testing.T) {
	doc := NewIngredientDocument(nil, ExtraRows)
	assert.Len(t, doc.Container.Blocks, ExtraRows)
	assert.Equal(t, "5", doc.Counter.Value)
	assert.Equal(t, "ingredients-0-ingredient_name", doc.Container.Blocks[0].Fields[0].Name)
	assert.Equal(t, "id_ingredients-4-quantity", doc.Container.Blocks[4].Fields[1].ID)
}
