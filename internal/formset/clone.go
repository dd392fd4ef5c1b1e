package formset

// CloneBlankBlock deep-copies the last block in the container into a
// fresh, unattached row carrying the given index. The copy keeps the
// structure (fields, labels, remove control) but arrives blank: text,
// number and hidden values cleared, checkboxes unchecked, inline
// validation errors dropped. Clearing hidden values also empties any
// inherited identity, so the clone is a new, non-persisted row without
// special-casing. The source block is never mutated.
func CloneBlankBlock(container *Container, index int) (*Block, error) {
	if container == nil || len(container.Blocks) == 0 {
		return nil, ErrNoTemplate
	}

	src := container.Blocks[len(container.Blocks)-1]
	clone := &Block{
		Fields:  make([]*Field, 0, len(src.Fields)),
		Visible: true,
	}
	if src.RemoveControl != nil {
		clone.RemoveControl = &Control{ID: WithIndex(src.RemoveControl.ID, index)}
	}

	for _, f := range src.Fields {
		nf := &Field{
			Name: WithIndex(f.Name, index),
			ID:   WithIndex(f.ID, index),
			Type: f.Type,
		}
		if f.Label != nil {
			nf.Label = &Label{
				For:  WithIndex(f.Label.For, index),
				Text: f.Label.Text,
			}
		}
		clone.Fields = append(clone.Fields, nf)
	}

	return clone, nil
}
