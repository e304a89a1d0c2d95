package richtext

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BlockType is the exclusive category of a block.
type BlockType string

const (
	BlockUnstyled      BlockType = "unstyled"
	BlockUnorderedList BlockType = "unordered-list-item"
	BlockOrderedList   BlockType = "ordered-list-item"
	BlockLeftAlign     BlockType = "left-align"
	BlockCenterAlign   BlockType = "center-align"
	BlockRightAlign    BlockType = "right-align"
)

// Valid reports whether t is one of the block types the editor can produce.
func (t BlockType) Valid() bool {
	switch t {
	case BlockUnstyled, BlockUnorderedList, BlockOrderedList,
		BlockLeftAlign, BlockCenterAlign, BlockRightAlign:
		return true
	}
	return false
}

func (t BlockType) IsList() bool {
	return t == BlockUnorderedList || t == BlockOrderedList
}

func (t BlockType) IsAlignment() bool {
	return t == BlockLeftAlign || t == BlockCenterAlign || t == BlockRightAlign
}

// StyleRange applies Style to the runes [Start, End) of a block's text.
type StyleRange struct {
	Start int
	End   int
	Style InlineStyle
}

// EntityRange links the runes [Start, End) of a block to an entry of the
// document's entity map. Entities are carried through untouched.
type EntityRange struct {
	Start int
	End   int
	Key   int
}

// Entity is an opaque annotation stored in the document's entity map.
type Entity struct {
	Type       string                 `json:"type"`
	Mutability string                 `json:"mutability"`
	Data       map[string]interface{} `json:"data"`
}

// Block is one paragraph-like unit of a document.
type Block struct {
	Key          string
	Type         BlockType
	Text         string
	StyleRanges  []StyleRange
	EntityRanges []EntityRange
	Depth        int
	Data         map[string]interface{}
}

// Len returns the length of the block's text in runes.
func (b Block) Len() int {
	return utf8.RuneCountInString(b.Text)
}

// Document is an ordered list of blocks plus a pass-through entity map.
type Document struct {
	Blocks    []Block
	EntityMap map[string]Entity
}

// EmptyDocument returns a document with a single empty unstyled block.
func EmptyDocument() Document {
	return Document{
		Blocks:    []Block{{Key: newBlockKey(nil), Type: BlockUnstyled}},
		EntityMap: map[string]Entity{},
	}
}

// FromPlainText returns a single unstyled block holding text verbatim.
func FromPlainText(text string) Document {
	doc := EmptyDocument()
	doc.Blocks[0].Text = text
	return doc
}

// PlainText joins the text of every block with a newline.
func PlainText(doc Document) string {
	texts := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, "\n")
}

// PlainText is shorthand for the package level PlainText.
func (d Document) PlainText() string {
	return PlainText(d)
}

// BlockByKey returns the index of the block with the given key, or -1.
func (d Document) BlockByKey(key string) int {
	for i, b := range d.Blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy; the copy shares no slices or maps with d.
func (d Document) Clone() Document {
	out := Document{
		Blocks:    make([]Block, len(d.Blocks)),
		EntityMap: make(map[string]Entity, len(d.EntityMap)),
	}
	for i, b := range d.Blocks {
		out.Blocks[i] = b.clone()
	}
	for k, e := range d.EntityMap {
		e.Data = copyData(e.Data)
		out.EntityMap[k] = e
	}
	return out
}

func (b Block) clone() Block {
	c := b
	c.StyleRanges = append([]StyleRange(nil), b.StyleRanges...)
	c.EntityRanges = append([]EntityRange(nil), b.EntityRanges...)
	c.Data = copyData(b.Data)
	return c
}

func copyData(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Normalize returns a copy of d in canonical form: at least one block, unique
// non-empty keys, known-or-preserved types, and style ranges clamped to the
// text, with same-style ranges merged.
func (d Document) Normalize() Document {
	out := d.Clone()
	if len(out.Blocks) == 0 {
		out.Blocks = []Block{{Type: BlockUnstyled}}
	}

	taken := make(map[string]bool, len(out.Blocks))
	for _, b := range out.Blocks {
		if b.Key != "" {
			taken[b.Key] = true
		}
	}

	seen := make(map[string]bool, len(out.Blocks))
	for i := range out.Blocks {
		b := &out.Blocks[i]
		if b.Key == "" || seen[b.Key] {
			b.Key = indexBlockKey(i, taken)
			taken[b.Key] = true
		}
		seen[b.Key] = true

		if b.Type == "" {
			b.Type = BlockUnstyled
		}
		if b.Depth < 0 {
			b.Depth = 0
		}
		b.normalizeRanges()
	}
	return out
}

func (b *Block) normalizeRanges() {
	n := b.Len()
	byStyle := make(map[InlineStyle][]StyleRange)
	for _, r := range b.StyleRanges {
		r.Start, r.End = clamp(r.Start, 0, n), clamp(r.End, 0, n)
		if r.Start >= r.End || r.Style == "" {
			continue
		}
		byStyle[r.Style] = append(byStyle[r.Style], r)
	}

	merged := make([]StyleRange, 0, len(b.StyleRanges))
	for _, ranges := range byStyle {
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
		cur := ranges[0]
		for _, r := range ranges[1:] {
			if r.Start <= cur.End {
				if r.End > cur.End {
					cur.End = r.End
				}
				continue
			}
			merged = append(merged, cur)
			cur = r
		}
		merged = append(merged, cur)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Start != merged[j].Start {
			return merged[i].Start < merged[j].Start
		}
		return merged[i].Style < merged[j].Style
	})
	if len(merged) == 0 {
		merged = nil
	}
	b.StyleRanges = merged

	entities := b.EntityRanges[:0]
	for _, r := range b.EntityRanges {
		r.Start, r.End = clamp(r.Start, 0, n), clamp(r.End, 0, n)
		if r.Start < r.End {
			entities = append(entities, r)
		}
	}
	if len(entities) == 0 {
		entities = nil
	}
	b.EntityRanges = entities
}

// StylesAt returns the inline styles applied to the rune at offset, sorted.
func (b Block) StylesAt(offset int) []InlineStyle {
	var styles []InlineStyle
	for _, r := range b.StyleRanges {
		if r.Start <= offset && offset < r.End {
			styles = append(styles, r.Style)
		}
	}
	sort.Slice(styles, func(i, j int) bool { return styles[i] < styles[j] })
	return styles
}

// covers reports whether style is applied to every rune of [start, end).
// Ranges must be normalized.
func (b Block) covers(style InlineStyle, start, end int) bool {
	for _, r := range b.StyleRanges {
		if r.Style == style && r.Start <= start && r.End >= end {
			return true
		}
	}
	return false
}

func (b *Block) addStyle(style InlineStyle, start, end int) {
	b.StyleRanges = append(b.StyleRanges, StyleRange{Start: start, End: end, Style: style})
	b.normalizeRanges()
}

func (b *Block) removeStyle(style InlineStyle, start, end int) {
	kept := make([]StyleRange, 0, len(b.StyleRanges)+1)
	for _, r := range b.StyleRanges {
		if r.Style != style || r.End <= start || r.Start >= end {
			kept = append(kept, r)
			continue
		}
		if r.Start < start {
			kept = append(kept, StyleRange{Start: r.Start, End: start, Style: style})
		}
		if r.End > end {
			kept = append(kept, StyleRange{Start: end, End: r.End, Style: style})
		}
	}
	b.StyleRanges = kept
	b.normalizeRanges()
}

// newBlockKey returns a short random key not present in taken.
func newBlockKey(taken map[string]bool) string {
	for {
		key := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
		if !taken[key] {
			return key
		}
	}
}

// indexBlockKey derives a key from the block position so that normalizing
// the same document always yields the same keys.
func indexBlockKey(i int, taken map[string]bool) string {
	base := "b" + strconv.Itoa(i)
	key := base
	for n := 1; taken[key]; n++ {
		key = base + "-" + strconv.Itoa(n)
	}
	return key
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
