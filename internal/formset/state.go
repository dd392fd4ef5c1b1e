package formset

import (
	"strconv"
	"strings"
)

// State is the explicit formset state: the attached blocks plus the
// counter field the submission handler reads to know how many rows to
// parse. The counter always equals the number of attached blocks,
// visible or soft-deleted, never only the visible count.
type State struct {
	Container *Container
	Counter   *Field
}

// NewState wires a container and its counter field together. The
// counter is synchronized to the attached block count immediately so a
// stale server-rendered value cannot survive initialization.
func NewState(container *Container, counter *Field) *State {
	s := &State{Container: container, Counter: counter}
	s.setTotal(len(container.Blocks))
	return s
}

// TotalCount reads the counter field. A mangled value counts as zero.
func (s *State) TotalCount() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Counter.Value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (s *State) setTotal(n int) {
	s.Counter.Value = strconv.Itoa(n)
}

// AttachedCount returns the number of blocks in the container,
// including hidden soft-deleted ones.
func (s *State) AttachedCount() int {
	return len(s.Container.Blocks)
}

// VisibleBlocks returns the attached blocks that are not hidden, in
// document order.
func (s *State) VisibleBlocks() []*Block {
	out := make([]*Block, 0, len(s.Container.Blocks))
	for _, b := range s.Container.Blocks {
		if b.Visible {
			out = append(out, b)
		}
	}
	return out
}
