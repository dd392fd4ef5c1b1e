package formset

import "log/slog"

// Controller orchestrates add, remove and reindex over the formset
// state. None of its operations raise to the caller: failures degrade
// to a diagnostic and, where possible, a reduced effect.
type Controller struct {
	state    *State
	registry *HandlerRegistry

	// focus receives the field that should take input focus after an
	// add; nil when the host does not track focus (server-side use).
	focus func(*Field)
}

// NewController builds a controller over state. focus may be nil.
func NewController(state *State, registry *HandlerRegistry, focus func(*Field)) *Controller {
	return &Controller{state: state, registry: registry, focus: focus}
}

// Add clones the last block into a new highest-index row, appends it,
// bumps the counter and registers the new row's remove handler. With
// nothing to clone it logs and leaves the state untouched.
func (c *Controller) Add() (*Block, error) {
	block, err := CloneBlankBlock(c.state.Container, c.state.TotalCount())
	if err != nil {
		slog.Warn("Cannot add ingredient row", "error", err)
		return nil, err
	}

	c.state.Container.Blocks = append(c.state.Container.Blocks, block)
	c.state.setTotal(c.state.TotalCount() + 1)
	c.registry.Register(block, c.Remove)

	if c.focus != nil {
		if f := block.FirstTextField(); f != nil {
			c.focus(f)
		}
	}
	return block, nil
}

// Remove soft-deletes a persisted block and physically detaches an
// unsaved one.
//
// Persisted rows must survive in the document: the server needs their
// identity and deletion flag to perform the delete on save, addressed
// by the index they held when last rendered. A persisted block whose
// deletion flag is missing degrades to hide-only, which loses the
// delete on the server; that is logged, not escalated.
//
// Removing an already-hidden persisted block is a no-op in effect (the
// flag is already set). Callers must not retain a reference to an
// unsaved block after Remove detached it.
func (c *Controller) Remove(b *Block) {
	if b.IsPersisted() {
		if f := b.deletionField(); f != nil {
			f.Checked = true
		} else {
			slog.Warn("Persisted row has no deletion flag, hiding without flagging",
				"identity", b.identityField().Value)
		}
		b.Visible = false
		return
	}

	if !c.state.Container.detach(b) {
		return
	}
	c.registry.Unregister(b)
	c.state.setTotal(c.state.TotalCount() - 1)
	c.Reindex()
}

// Reindex assigns contiguous indices 0..k-1 to the currently visible
// blocks in document order and rewrites every field name, id and label
// reference accordingly, unconditionally, so a redundant call is safe.
// Hidden soft-deleted blocks are skipped and keep their stale index
// forever; the server addresses deleted rows by the position they were
// submitted under, so renumbering them would break the delete.
func (c *Controller) Reindex() {
	idx := 0
	for _, b := range c.state.Container.Blocks {
		if !b.Visible {
			continue
		}
		b.setIndex(idx)
		if b.RemoveControl != nil {
			b.RemoveControl.ID = WithIndex(b.RemoveControl.ID, idx)
		}
		idx++
	}
}
