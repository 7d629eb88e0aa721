package buffer

import (
	"cmp"
	"fmt"
	"slices"
)

// TextEdit replaces the bytes [Start, End) with NewText.
type TextEdit struct {
	// Start is the byte index where the edit begins (inclusive).
	Start int

	// End is the byte index where the edit ends (exclusive).
	End int

	// NewText is the replacement text.
	NewText string
}

// Delta returns the change in content length the edit causes.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.End - e.Start)
}

// EditError describes an edit whose range does not fit the content.
type EditError struct {
	Edit    TextEdit
	Message string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Start, e.Edit.End, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Start, e.First.End, e.Second.Start, e.Second.End)
}

// ValidateEdits checks that every edit lies within content of length n.
func ValidateEdits(edits []TextEdit, n int) error {
	for _, edit := range edits {
		if edit.Start < 0 {
			return &EditError{Edit: edit, Message: "start offset is negative"}
		}
		if edit.End < edit.Start {
			return &EditError{Edit: edit, Message: "end offset is before start offset"}
		}
		if edit.End > n {
			return &EditError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.End, n),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start, then end. The sort is stable so that
// insertions at one offset keep their relative order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})
}

// DetectConflicts returns the first pair of overlapping edits in a sorted
// slice, or nil.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if edits[i].Start < edits[i-1].End {
			return &ConflictError{First: edits[i-1], Second: edits[i]}
		}
	}
	return nil
}

// PrepareEdits validates, sorts and conflict-checks edits against content
// of length n. The input slice is not modified.
func PrepareEdits(edits []TextEdit, n int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	if err := ValidateEdits(edits, n); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// Span returns the smallest range of the edited content that covers every
// sorted edit, with ok false when there are no edits.
func Span(sorted []TextEdit) (int, int, bool) {
	if len(sorted) == 0 {
		return 0, 0, false
	}
	delta := 0
	for _, e := range sorted[:len(sorted)-1] {
		delta += e.Delta()
	}
	last := sorted[len(sorted)-1]
	return sorted[0].Start, last.Start + delta + len(last.NewText), true
}
