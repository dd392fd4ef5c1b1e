package formset

import "strings"

// FieldType mirrors the input types the cloner has to treat
// differently: text-like values are cleared, checkboxes unchecked.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
	FieldHidden
	FieldCheckbox
)

// Label is the <label> paired with a field; its For reference follows
// the field id through every reindex.
type Label struct {
	For  string
	Text string
}

// Field is one named input inside a sub-form block.
type Field struct {
	Name    string
	ID      string
	Type    FieldType
	Value   string
	Checked bool
	Label   *Label
	Errors  []string // inline validation errors rendered by the server
}

// InputType returns the HTML input type attribute for the field.
func (f *Field) InputType() string {
	switch f.Type {
	case FieldNumber:
		return "number"
	case FieldHidden:
		return "hidden"
	case FieldCheckbox:
		return "checkbox"
	default:
		return "text"
	}
}

// Control is a clickable element (add trigger, per-row remove control).
type Control struct {
	ID string
}

// Block is one repeatable sub-form region: an ordered set of fields
// plus a remove control. Whether the block is attached is decided by
// container membership, not by the block itself.
type Block struct {
	Fields        []*Field
	RemoveControl *Control
	Visible       bool
}

// Capability is the explicit presence check for the optional identity
// and deletion-flag fields, so degradation on a malformed block is a
// deliberate branch instead of an accidental fallthrough.
type Capability int

const (
	CapabilityAbsent Capability = iota
	CapabilityUnset
	CapabilitySet
)

const (
	identitySuffix = "-id"
	deleteSuffix   = "-DELETE"
)

// identityField returns the hidden identity field, or nil.
func (b *Block) identityField() *Field {
	for _, f := range b.Fields {
		if strings.HasSuffix(f.Name, identitySuffix) {
			return f
		}
	}
	return nil
}

// deletionField returns the deletion-flag checkbox, or nil.
func (b *Block) deletionField() *Field {
	for _, f := range b.Fields {
		if strings.HasSuffix(f.Name, deleteSuffix) {
			return f
		}
	}
	return nil
}

// Identity reports whether the block carries an identity field and
// whether it holds a stored row id.
func (b *Block) Identity() Capability {
	f := b.identityField()
	switch {
	case f == nil:
		return CapabilityAbsent
	case strings.TrimSpace(f.Value) == "":
		return CapabilityUnset
	default:
		return CapabilitySet
	}
}

// DeletionFlag reports the state of the deletion-flag checkbox.
func (b *Block) DeletionFlag() Capability {
	f := b.deletionField()
	switch {
	case f == nil:
		return CapabilityAbsent
	case f.Checked:
		return CapabilitySet
	default:
		return CapabilityUnset
	}
}

// IsPersisted reports whether the block corresponds to a row already
// stored server-side. Persisted blocks are soft-deleted, never
// detached.
func (b *Block) IsPersisted() bool {
	return b.Identity() == CapabilitySet
}

// IsMarkedDeleted reports whether the deletion flag is checked.
func (b *Block) IsMarkedDeleted() bool {
	return b.DeletionFlag() == CapabilitySet
}

// Index derives the block's position from the first field name that
// embeds one. The second return value is false for a block with no
// indexed fields.
func (b *Block) Index() (int, bool) {
	for _, f := range b.Fields {
		if n, ok := IndexOf(f.Name); ok {
			return n, true
		}
	}
	return 0, false
}

// FirstTextField returns the field that receives focus after an add.
func (b *Block) FirstTextField() *Field {
	for _, f := range b.Fields {
		if f.Type == FieldText {
			return f
		}
	}
	return nil
}

// setIndex rewrites every field's name and id, and the paired label's
// for-reference, to encode idx. Fields without an embedded index are
// left as they are.
func (b *Block) setIndex(idx int) {
	for _, f := range b.Fields {
		f.Name = WithIndex(f.Name, idx)
		f.ID = WithIndex(f.ID, idx)
		if f.Label != nil {
			f.Label.For = WithIndex(f.Label.For, idx)
		}
	}
}

// Container holds the attached blocks in visual order.
type Container struct {
	Blocks []*Block
}

// PersistedCount reports how many attached blocks carry a set
// identity.
func (c *Container) PersistedCount() int {
	n := 0
	for _, b := range c.Blocks {
		if b.IsPersisted() {
			n++
		}
	}
	return n
}

// detach removes the block from the container. Only non-persisted
// blocks are ever detached.
func (c *Container) detach(b *Block) bool {
	for i, blk := range c.Blocks {
		if blk == b {
			c.Blocks = append(c.Blocks[:i], c.Blocks[i+1:]...)
			return true
		}
	}
	return false
}
