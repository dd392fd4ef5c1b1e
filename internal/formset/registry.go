package formset

// RemoveHandler reacts to a block's remove control.
type RemoveHandler func(*Block)

// HandlerRegistry stores the remove handler registered per block, so
// wiring is revocable: teardown or a physical remove can unregister
// cleanly instead of leaking handlers onto detached blocks.
type HandlerRegistry struct {
	handlers map[*Block]RemoveHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[*Block]RemoveHandler)}
}

// Register attaches a handler to the block's remove control,
// replacing any previous registration.
func (r *HandlerRegistry) Register(b *Block, h RemoveHandler) {
	r.handlers[b] = h
}

// Unregister drops the block's handler.
func (r *HandlerRegistry) Unregister(b *Block) {
	delete(r.handlers, b)
}

// Registered reports whether the block has a handler attached.
func (r *HandlerRegistry) Registered(b *Block) bool {
	_, ok := r.handlers[b]
	return ok
}

// Trigger invokes the block's handler, if any. It is how a remove
// control "click" reaches the lifecycle controller.
func (r *HandlerRegistry) Trigger(b *Block) {
	if h, ok := r.handlers[b]; ok {
		h(b)
	}
}

// Clear drops every registration.
func (r *HandlerRegistry) Clear() {
	r.handlers = make(map[*Block]RemoveHandler)
}
