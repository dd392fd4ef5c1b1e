// Package formset keeps a variable-length list of repeatable sub-form
// blocks (one per ingredient row) consistent with the indexed field
// naming convention the submission handler expects.
//
// The rendered form is treated as a projection of an explicit State:
// every operation mutates State first and the field attributes follow.
// Persisted rows are never detached, only hidden and flagged, so the
// server still receives their identity and deletion flag on submit.
package formset

import "errors"

var (
	// ErrNoTemplate is returned by Add when the container holds no
	// blocks, so there is nothing to clone a new row from.
	ErrNoTemplate = errors.New("formset: no existing block to clone")

	// ErrMissingWiringElement is returned by Initialize when the
	// container, add trigger or counter field cannot be found. The
	// synchronizer then disables itself entirely: partial wiring on a
	// malformed page is worse than no wiring.
	ErrMissingWiringElement = errors.New("formset: required wiring element missing")
)
