package formset

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ingredientBlock builds a rendered ingredient row the way the recipe
// form template does: name and quantity text inputs with labels, a
// hidden identity field and a DELETE checkbox.
func ingredientBlock(index int, identity string) *Block {
	field := func(suffix string, typ FieldType, label string) *Field {
		name := fmt.Sprintf("ingredients-%d-%s", index, suffix)
		f := &Field{Name: name, ID: "id_" + name, Type: typ}
		if label != "" {
			f.Label = &Label{For: f.ID, Text: label}
		}
		return f
	}

	idField := field("id", FieldHidden, "")
	idField.Value = identity

	return &Block{
		Visible:       true,
		RemoveControl: &Control{ID: fmt.Sprintf("remove-ingredients-%d", index)},
		Fields: []*Field{
			field("ingredient_name", FieldText, "Raaka-aine"),
			field("quantity", FieldText, "Määrä"),
			idField,
			field("DELETE", FieldCheckbox, ""),
		},
	}
}

func newDocument(blocks ...*Block) *Document {
	return &Document{
		Container:  &Container{Blocks: blocks},
		AddTrigger: &Control{ID: "add-ingredient"},
		Counter: &Field{
			Name:  "ingredients-TOTAL_FORMS",
			ID:    "id_ingredients-TOTAL_FORMS",
			Type:  FieldHidden,
			Value: strconv.Itoa(len(blocks)),
		},
	}
}

func mustInitialize(t *testing.T, doc *Document) *Synchronizer {
	t.Helper()
	s, err := Initialize(doc)
	require.NoError(t, err)
	require.True(t, s.Enabled())
	return s
}

// counterMatchesAttached asserts invariant I1: the counter equals the
// attached block count, hidden rows included.
func counterMatchesAttached(t *testing.T, s *State) {
	t.Helper()
	assert.Equal(t, s.AttachedCount(), s.TotalCount())
}

// visibleIndicesContiguous asserts invariant I2 for visible blocks.
func visibleIndicesContiguous(t *testing.T, s *State) {
	t.Helper()
	for want, b := range s.VisibleBlocks() {
		got, ok := b.Index()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}

func TestAddAppendsHighestIndexRow(t *testing.T) {
	// Scenario A: one unsaved pre-rendered block, three adds.
	doc := newDocument(ingredientBlock(0, ""))
	s := mustInitialize(t, doc)

	s.ClickAdd()
	s.ClickAdd()
	s.ClickAdd()

	require.Len(t, doc.Container.Blocks, 4)
	assert.Equal(t, 4, s.State().TotalCount())
	counterMatchesAttached(t, s.State())
	visibleIndicesContiguous(t, s.State())

	// New rows arrive blank and non-persisted, with remove handlers
	// registered and focus on the first text field.
	last := doc.Container.Blocks[3]
	assert.Equal(t, CapabilityUnset, last.Identity())
	assert.Equal(t, "ingredients-3-ingredient_name", last.Fields[0].Name)
	assert.Equal(t, "id_ingredients-3-ingredient_name", last.Fields[0].ID)
	assert.Equal(t, "id_ingredients-3-ingredient_name", last.Fields[0].Label.For)
	assert.Same(t, last.Fields[0], doc.Focused)
}

func TestAddWithEmptyContainer(t *testing.T) {
	// Scenario D: nothing to clone from.
	doc := newDocument()
	s := mustInitialize(t, doc)

	s.ClickAdd()

	assert.Empty(t, doc.Container.Blocks)
	assert.Equal(t, 0, s.State().TotalCount())

	_, err := CloneBlankBlock(doc.Container, 0)
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestRemoveUnsavedBlock(t *testing.T) {
	// Scenario B: persisted block stays, unsaved block is detached.
	persisted := ingredientBlock(0, "17")
	unsaved := ingredientBlock(1, "")
	doc := newDocument(persisted, unsaved)
	s := mustInitialize(t, doc)

	s.ClickRemove(unsaved)

	require.Len(t, doc.Container.Blocks, 1)
	assert.Same(t, persisted, doc.Container.Blocks[0])
	assert.Equal(t, 1, s.State().TotalCount())
	counterMatchesAttached(t, s.State())

	idx, ok := persisted.Index()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.True(t, persisted.Visible)
	assert.False(t, persisted.IsMarkedDeleted())
}

func TestRemovePersistedBlock(t *testing.T) {
	// Scenario C: soft delete keeps the row attached at its old index.
	first := ingredientBlock(0, "17")
	second := ingredientBlock(1, "18")
	doc := newDocument(first, second)
	s := mustInitialize(t, doc)

	s.ClickRemove(first)

	require.Len(t, doc.Container.Blocks, 2)
	assert.Equal(t, 2, s.State().TotalCount())
	assert.False(t, first.Visible)
	assert.True(t, first.IsMarkedDeleted())

	// The hidden block keeps its stale index; the survivor is
	// renumbered from zero on the next reindex-triggering operation.
	idx, _ := first.Index()
	assert.Equal(t, 0, idx)
	idx, _ = second.Index()
	assert.Equal(t, 1, idx)
}

func TestDoubleRemoveOnPersistedBlockIsNoOp(t *testing.T) {
	block := ingredientBlock(0, "42")
	doc := newDocument(block)
	s := mustInitialize(t, doc)

	s.ClickRemove(block)
	s.ClickRemove(block)

	assert.Len(t, doc.Container.Blocks, 1)
	assert.Equal(t, 1, s.State().TotalCount())
	assert.False(t, block.Visible)
	assert.True(t, block.IsMarkedDeleted())
}

func TestHiddenBlocksAreNeverRenumbered(t *testing.T) {
	// Soft-delete row 0, then add and remove around it: the hidden
	// row must keep index 0 even though a visible row claims it too.
	deleted := ingredientBlock(0, "17")
	kept := ingredientBlock(1, "")
	doc := newDocument(deleted, kept)
	s := mustInitialize(t, doc)

	s.ClickRemove(deleted)
	s.ClickAdd()
	extra := doc.Container.Blocks[2]
	s.ClickRemove(kept)

	idx, _ := deleted.Index()
	assert.Equal(t, 0, idx)
	idx, _ = extra.Index()
	assert.Equal(t, 0, idx)
	assert.Equal(t, 2, s.State().TotalCount())
	counterMatchesAttached(t, s.State())
	visibleIndicesContiguous(t, s.State())
}

func TestReindexIsIdempotent(t *testing.T) {
	// P5: a redundant reindex changes nothing.
	a := ingredientBlock(0, "17")
	b := ingredientBlock(3, "")
	doc := newDocument(a, b)
	s := mustInitialize(t, doc)
	ctrl := NewController(s.State(), NewHandlerRegistry(), nil)

	ctrl.Reindex()
	snapshot := func() []string {
		var out []string
		for _, blk := range doc.Container.Blocks {
			for _, f := range blk.Fields {
				out = append(out, f.Name, f.ID)
				if f.Label != nil {
					out = append(out, f.Label.For)
				}
			}
		}
		return out
	}
	first := snapshot()
	ctrl.Reindex()
	assert.Equal(t, first, snapshot())
	visibleIndicesContiguous(t, s.State())
}

func TestCloneDoesNotMutateSource(t *testing.T) {
	// P6: clone isolation.
	src := ingredientBlock(0, "17")
	src.Fields[0].Value = "Maito"
	src.Fields[1].Value = "2 dl"
	src.Fields[1].Errors = []string{"Määrä ei kelpaa."}
	src.Fields[3].Checked = true
	container := &Container{Blocks: []*Block{src}}

	clone, err := CloneBlankBlock(container, 1)
	require.NoError(t, err)

	assert.Equal(t, "Maito", src.Fields[0].Value)
	assert.Equal(t, "2 dl", src.Fields[1].Value)
	assert.Equal(t, []string{"Määrä ei kelpaa."}, src.Fields[1].Errors)
	assert.True(t, src.Fields[3].Checked)
	assert.Equal(t, "17", src.Fields[2].Value)
	assert.Len(t, container.Blocks, 1)

	// The clone is blank: values cleared, checkbox unchecked, errors
	// stripped, identity empty even though the source was persisted.
	assert.Equal(t, "", clone.Fields[0].Value)
	assert.Equal(t, "", clone.Fields[1].Value)
	assert.Empty(t, clone.Fields[1].Errors)
	assert.False(t, clone.Fields[3].Checked)
	assert.Equal(t, CapabilityUnset, clone.Identity())
	assert.Equal(t, "ingredients-1-quantity", clone.Fields[1].Name)
}

func TestMissingDeletionFlagDegradesToHideOnly(t *testing.T) {
	block := ingredientBlock(0, "17")
	block.Fields = block.Fields[:3] // drop the DELETE checkbox
	doc := newDocument(block)
	s := mustInitialize(t, doc)

	assert.Equal(t, CapabilityAbsent, block.DeletionFlag())

	s.ClickRemove(block)

	assert.Len(t, doc.Container.Blocks, 1)
	assert.False(t, block.Visible)
	assert.Equal(t, CapabilityAbsent, block.DeletionFlag())
}

func TestInitializeWithMissingWiring(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{"nil document", nil},
		{"no container", &Document{AddTrigger: &Control{}, Counter: &Field{}}},
		{"no add trigger", &Document{Container: &Container{}, Counter: &Field{}}},
		{"no counter", &Document{Container: &Container{}, AddTrigger: &Control{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Initialize(tt.doc)
			assert.ErrorIs(t, err, ErrMissingWiringElement)
			assert.False(t, s.Enabled())

			// A disabled synchronizer intercepts nothing.
			s.ClickAdd()
			assert.False(t, s.PressEnter(&Field{Type: FieldText}))
		})
	}
}

func TestEnterInsideRowAddsInsteadOfSubmitting(t *testing.T) {
	block := ingredientBlock(0, "")
	doc := newDocument(block)
	s := mustInitialize(t, doc)

	intercepted := s.PressEnter(block.Fields[1])
	assert.True(t, intercepted)
	assert.Len(t, doc.Container.Blocks, 2)
	assert.Equal(t, 2, s.State().TotalCount())

	// Enter outside the container, or in a non-text field, submits
	// the page form as usual.
	assert.False(t, s.PressEnter(&Field{Name: "name", Type: FieldText}))
	assert.False(t, s.PressEnter(block.Fields[3]))
	assert.Len(t, doc.Container.Blocks, 2)
}

func TestTeardownRevokesHandlers(t *testing.T) {
	block := ingredientBlock(0, "")
	doc := newDocument(block)
	s := mustInitialize(t, doc)

	s.Teardown()
	s.ClickRemove(block)
	s.ClickAdd()

	assert.Len(t, doc.Container.Blocks, 1)
	assert.True(t, block.Visible)
}

func TestCounterInvariantOverOperationSequences(t *testing.T) {
	// P1/P2 across a longer mixed sequence of adds and removes.
	doc := newDocument(ingredientBlock(0, "7"), ingredientBlock(1, ""), ingredientBlock(2, "9"))
	s := mustInitialize(t, doc)

	ops := []struct {
		run func()
		// Contiguity from zero is only promised right after a
		// reindex-triggering operation, i.e. an unsaved-row detach.
		reindexes bool
	}{
		{func() { s.ClickAdd() }, false},
		{func() { s.ClickRemove(doc.Container.Blocks[0]) }, false}, // persisted: soft delete
		{func() { s.ClickAdd() }, false},
		{func() { s.ClickRemove(doc.Container.Blocks[1]) }, true}, // unsaved: detach
		{func() { s.ClickAdd() }, false},
		{func() { s.ClickRemove(doc.Container.Blocks[len(doc.Container.Blocks)-1]) }, true},
	}
	for _, op := range ops {
		op.run()
		counterMatchesAttached(t, s.State())
		if op.reindexes {
			visibleIndicesContiguous(t, s.State())
		}
	}
}
