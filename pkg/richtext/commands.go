package richtext

import (
	"fmt"
	"unicode/utf8"
)

// Selection identifies a caret or range. EndBlockKey may be empty, in which
// case the selection lies within BlockKey. Offsets are rune offsets.
type Selection struct {
	BlockKey    string
	StartOffset int
	EndBlockKey string
	EndOffset   int
}

// Caret returns a collapsed selection at offset in block key.
func Caret(key string, offset int) Selection {
	return Selection{BlockKey: key, StartOffset: offset, EndOffset: offset}
}

// Range returns a selection of [start, end) inside one block.
func Range(key string, start, end int) Selection {
	return Selection{BlockKey: key, StartOffset: start, EndOffset: end}
}

func (s Selection) endKey() string {
	if s.EndBlockKey == "" {
		return s.BlockKey
	}
	return s.EndBlockKey
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.endKey() == s.BlockKey && s.StartOffset == s.EndOffset
}

// InvalidSelectionError reports a selection that does not fit the document.
type InvalidSelectionError struct {
	Selection Selection
	Reason    string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %+v: %s", e.Selection, e.Reason)
}

// span is the part of one block covered by a selection.
type span struct {
	index      int
	start, end int
}

// resolve maps sel onto per-block spans, in document order.
func (d Document) resolve(sel Selection) ([]span, error) {
	first := d.BlockByKey(sel.BlockKey)
	if first < 0 {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "unknown block " + sel.BlockKey}
	}
	last := d.BlockByKey(sel.endKey())
	if last < 0 {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "unknown block " + sel.endKey()}
	}
	if last < first {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "end block precedes start block"}
	}
	if sel.StartOffset < 0 || sel.StartOffset > d.Blocks[first].Len() {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "start offset out of range"}
	}
	if sel.EndOffset < 0 || sel.EndOffset > d.Blocks[last].Len() {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "end offset out of range"}
	}
	if first == last && sel.EndOffset < sel.StartOffset {
		return nil, &InvalidSelectionError{Selection: sel, Reason: "end offset precedes start offset"}
	}

	spans := make([]span, 0, last-first+1)
	for i := first; i <= last; i++ {
		sp := span{index: i, start: 0, end: d.Blocks[i].Len()}
		if i == first {
			sp.start = sel.StartOffset
		}
		if i == last {
			sp.end = sel.EndOffset
		}
		spans = append(spans, sp)
	}
	return spans, nil
}

// ValidateSelection returns an *InvalidSelectionError when sel does not fit doc.
func ValidateSelection(doc Document, sel Selection) error {
	_, err := doc.resolve(sel)
	return err
}

// ToggleInlineStyle removes style from the selection when every selected
// character already carries it, and applies it to the whole selection
// otherwise. Invalid or collapsed selections leave doc unchanged.
func ToggleInlineStyle(doc Document, sel Selection, style InlineStyle) Document {
	if !style.Valid() {
		return doc
	}
	spans, err := doc.resolve(sel)
	if err != nil {
		return doc
	}

	selected := 0
	covered := true
	for _, sp := range spans {
		if sp.start == sp.end {
			continue
		}
		selected += sp.end - sp.start
		if !doc.Blocks[sp.index].covers(style, sp.start, sp.end) {
			covered = false
		}
	}
	if selected == 0 {
		return doc
	}

	out := doc.Clone()
	for _, sp := range spans {
		if sp.start == sp.end {
			continue
		}
		b := &out.Blocks[sp.index]
		if covered {
			b.removeStyle(style, sp.start, sp.end)
		} else {
			b.addStyle(style, sp.start, sp.end)
		}
	}
	return out
}

// ToggleBlockType sets every selected block to blockType, or back to
// unstyled when the first selected block already has that type. Alignment
// and list variants share the single type field, so applying one replaces
// any other.
func ToggleBlockType(doc Document, sel Selection, blockType BlockType) Document {
	if !blockType.Valid() {
		return doc
	}
	spans, err := doc.resolve(sel)
	if err != nil {
		return doc
	}

	target := blockType
	if doc.Blocks[spans[0].index].Type == blockType {
		target = BlockUnstyled
	}

	out := doc.Clone()
	for _, sp := range spans {
		b := &out.Blocks[sp.index]
		b.Type = target
		if !target.IsList() {
			b.Depth = 0
		}
	}
	return out
}

// CurrentInlineStyles returns the styles a toolbar should show as active:
// for a caret, those of the character before it (or the first character at
// the start of a block); for a range, those of its first character.
func CurrentInlineStyles(doc Document, sel Selection) []InlineStyle {
	spans, err := doc.resolve(sel)
	if err != nil {
		return nil
	}
	if sel.IsCollapsed() {
		b := doc.Blocks[spans[0].index]
		switch {
		case sel.StartOffset > 0:
			return b.StylesAt(sel.StartOffset - 1)
		case b.Len() > 0:
			return b.StylesAt(0)
		}
		return nil
	}
	for _, sp := range spans {
		if sp.start < sp.end {
			return doc.Blocks[sp.index].StylesAt(sp.start)
		}
	}
	return nil
}

// BlockTypeAt returns the type of the block the selection starts in.
func BlockTypeAt(doc Document, sel Selection) (BlockType, bool) {
	i := doc.BlockByKey(sel.BlockKey)
	if i < 0 {
		return "", false
	}
	return doc.Blocks[i].Type, true
}

// InsertText replaces the selection with text. The selection must lie in a
// single block. Inserted text inherits the styles of the character before
// the insertion point; newlines are kept inside the block.
func InsertText(doc Document, sel Selection, text string) Document {
	spans, err := doc.resolve(sel)
	if err != nil || len(spans) != 1 {
		return doc
	}
	sp := spans[0]
	out := doc.Clone()
	b := &out.Blocks[sp.index]

	runes := []rune(b.Text)
	n := utf8.RuneCountInString(text)
	b.Text = string(runes[:sp.start]) + text + string(runes[sp.end:])

	styles := b.StyleRanges[:0]
	for _, r := range b.StyleRanges {
		if start, end, ok := shiftRange(r.Start, r.End, sp.start, sp.end, n); ok {
			styles = append(styles, StyleRange{Start: start, End: end, Style: r.Style})
		}
	}
	b.StyleRanges = styles

	entities := b.EntityRanges[:0]
	for _, r := range b.EntityRanges {
		// Entities never grow over typed text.
		if r.End <= sp.start {
			entities = append(entities, r)
		} else if r.Start >= sp.end {
			delta := n - (sp.end - sp.start)
			entities = append(entities, EntityRange{Start: r.Start + delta, End: r.End + delta, Key: r.Key})
		}
	}
	b.EntityRanges = entities

	b.normalizeRanges()
	return out
}

// shiftRange maps [a, b) across the replacement of [s, e) by n runes.
func shiftRange(a, b, s, e, n int) (int, int, bool) {
	delta := n - (e - s)
	switch {
	case b < s:
		return a, b, true
	case a < s:
		if b > e {
			return a, b + delta, true
		}
		return a, s + n, true
	case a >= e:
		return a + delta, b + delta, true
	case b > e:
		return s + n, b + delta, true
	}
	return 0, 0, false
}

// AppendBlock returns doc with a new block of the given type and text.
func AppendBlock(doc Document, blockType BlockType, text string) Document {
	out := doc.Clone()
	taken := make(map[string]bool, len(out.Blocks))
	for _, b := range out.Blocks {
		taken[b.Key] = true
	}
	if !blockType.Valid() {
		blockType = BlockUnstyled
	}
	out.Blocks = append(out.Blocks, Block{Key: newBlockKey(taken), Type: blockType, Text: text})
	return out
}
