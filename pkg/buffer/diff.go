package buffer

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffEdits returns the edits that turn oldText into newText. Offsets refer
// to oldText and the result is sorted and conflict-free, ready for Apply.
// Unchanged stretches produce no edit, so anchors inside them are untouched.
//
// The diff works on runes. If either text is not valid UTF-8 it falls back
// to a single edit replacing everything between the common byte prefix and
// suffix, so invalid bytes are carried through unchanged.
func DiffEdits(oldText, newText string) []TextEdit {
	if oldText == newText {
		return nil
	}
	if !utf8.ValidString(oldText) || !utf8.ValidString(newText) {
		return []TextEdit{trimmedEdit(oldText, newText)}
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var edits []TextEdit
	offset := 0
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			offset += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if n := len(edits); n > 0 && edits[n-1].End == offset {
				edits[n-1].End += len(d.Text)
			} else {
				edits = append(edits, TextEdit{Start: offset, End: offset + len(d.Text)})
			}
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			if n := len(edits); n > 0 && edits[n-1].End == offset {
				edits[n-1].NewText += d.Text
			} else {
				edits = append(edits, TextEdit{Start: offset, End: offset, NewText: d.Text})
			}
		}
	}
	return edits
}

// trimmedEdit replaces the bytes between the common prefix and the common
// suffix of oldText and newText. The two never overlap.
func trimmedEdit(oldText, newText string) TextEdit {
	limit := min(len(oldText), len(newText))

	prefix := 0
	for prefix < limit && oldText[prefix] == newText[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < limit-prefix && oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}
	return TextEdit{
		Start:   prefix,
		End:     len(oldText) - suffix,
		NewText: newText[prefix : len(newText)-suffix],
	}
}
