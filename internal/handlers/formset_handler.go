package handlers

import (
	"net/http"
	"strconv"

	"github.com/OPpuolitaival/recipe-example-app/internal/forms"
	"github.com/OPpuolitaival/recipe-example-app/internal/formset"

	"github.com/gin-gonic/gin"
)

// The ingredient rows are managed over the wire: HTMX posts the whole
// recipe form to these endpoints, the synchronizer runs against the
// reconstructed page state, and the re-rendered formset fragment is
// swapped back in. The browser never renumbers a field itself.

// AddIngredientRowFragment appends one blank ingredient row.
func AddIngredientRowFragment(c *gin.Context) {
	sync, doc, ok := initializeFromRequest(c)
	if !ok {
		return
	}
	sync.ClickAdd()
	renderFormset(c, doc)
}

// RemoveIngredientRowFragment removes the row named by the "row" form
// value: a persisted row is hidden and flagged for deletion, an
// unsaved one disappears and the survivors are renumbered.
func RemoveIngredientRowFragment(c *gin.Context) {
	sync, doc, ok := initializeFromRequest(c)
	if !ok {
		return
	}

	row, err := strconv.Atoi(c.PostForm("row"))
	if err != nil || row < 0 {
		c.String(http.StatusBadRequest, "Virheellinen rivinumero.")
		return
	}

	// The row number is the block's position in the container, not
	// its embedded index; hidden rows keep stale indices, positions
	// stay unambiguous.
	blocks := doc.Container.Blocks
	if row >= len(blocks) {
		c.String(http.StatusBadRequest, "Virheellinen rivinumero.")
		return
	}
	sync.ClickRemove(blocks[row])
	renderFormset(c, doc)
}

func initializeFromRequest(c *gin.Context) (*formset.Synchronizer, *formset.Document, bool) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "Lomakkeen luku epäonnistui.")
		return nil, nil, false
	}

	doc, err := forms.DocumentFromValues(c.Request.PostForm)
	if err != nil {
		c.String(http.StatusBadRequest, "Lomakkeen hallintatiedot puuttuvat.")
		return nil, nil, false
	}

	sync, err := formset.Initialize(doc)
	if err != nil {
		// Disabled synchronizer: nothing to do for this page.
		c.String(http.StatusUnprocessableEntity, "Rivien hallinta ei ole käytössä.")
		return nil, nil, false
	}
	return sync, doc, true
}

func renderFormset(c *gin.Context, doc *formset.Document) {
	c.HTML(http.StatusOK, "includes/ingredient_formset.html", gin.H{
		"Formset": doc,
	})
}
