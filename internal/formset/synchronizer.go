package formset

import "log/slog"

// Document is the page surface the synchronizer wires itself to: the
// block container, the add trigger, the counter field and, when the
// host tracks it, the currently focused field.
type Document struct {
	Container  *Container
	AddTrigger *Control
	Counter    *Field
	Focused    *Field
}

// Synchronizer is the entry point: it wires lifecycle events to the
// controller once at page-ready time. It owns no state beyond the
// State it closes over.
type Synchronizer struct {
	doc      *Document
	state    *State
	ctrl     *Controller
	registry *HandlerRegistry
	enabled  bool
}

// Initialize locates the wiring elements and registers all handlers.
// If the container, add trigger or counter field is absent the whole
// component stays disabled and ErrMissingWiringElement is returned;
// the page keeps working with plain full-page submission.
func Initialize(doc *Document) (*Synchronizer, error) {
	s := &Synchronizer{doc: doc}
	if doc == nil || doc.Container == nil || doc.AddTrigger == nil || doc.Counter == nil {
		slog.Warn("Formset wiring element missing, dynamic rows disabled")
		return s, ErrMissingWiringElement
	}

	s.registry = NewHandlerRegistry()
	s.state = NewState(doc.Container, doc.Counter)
	s.ctrl = NewController(s.state, s.registry, func(f *Field) { doc.Focused = f })

	// Server-rendered rows need their remove controls wired too.
	for _, b := range doc.Container.Blocks {
		s.registry.Register(b, s.ctrl.Remove)
	}

	s.enabled = true
	return s, nil
}

// Enabled reports whether initialization completed.
func (s *Synchronizer) Enabled() bool {
	return s.enabled
}

// State exposes the formset state for rendering and tests.
func (s *Synchronizer) State() *State {
	return s.state
}

// ClickAdd is the add-trigger event.
func (s *Synchronizer) ClickAdd() {
	if !s.enabled {
		return
	}
	s.ctrl.Add()
}

// ClickRemove is the remove-control event for a block.
func (s *Synchronizer) ClickRemove(b *Block) {
	if !s.enabled {
		return
	}
	s.registry.Trigger(b)
}

// PressEnter is the submission guard: the row-submit key inside any
// text field of the container adds a row instead of submitting the
// page form. It reports whether the event was intercepted.
func (s *Synchronizer) PressEnter(f *Field) bool {
	if !s.enabled || f == nil || f.Type != FieldText {
		return false
	}
	for _, b := range s.doc.Container.Blocks {
		for _, bf := range b.Fields {
			if bf == f {
				s.ctrl.Add()
				return true
			}
		}
	}
	return false
}

// Teardown revokes every handler registration. Not reached from the
// page lifecycle (initialization runs once), but it keeps re-wiring in
// tests and embedders leak-free.
func (s *Synchronizer) Teardown() {
	if s.registry != nil {
		s.registry.Clear()
	}
	s.enabled = false
}
