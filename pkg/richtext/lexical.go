package richtext

import (
	"encoding/json"
	"unicode/utf8"
)

// Notes written by Lexical based clients store a node tree instead of raw
// blocks. They are imported into blocks so that such notes stay editable.

type lexicalRoot struct {
	Root lexicalNode `json:"root"`
}

type lexicalNode struct {
	Type     string        `json:"type"`
	Children []lexicalNode `json:"children,omitempty"`

	// Text specific
	Text   string      `json:"text,omitempty"`
	Format interface{} `json:"format,omitempty"` // bitmask on text, alignment on elements
	Style  string      `json:"style,omitempty"`

	// Paragraph specific
	Indent int `json:"indent,omitempty"`

	// List specific
	ListType string `json:"listType,omitempty"` // check, bullet, number
}

// Text format bitmask
const (
	lexicalBold      = 1
	lexicalItalic    = 2
	lexicalUnderline = 8
)

func parseLexical(content string) (Document, error) {
	var root lexicalRoot
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return Document{}, &DecodeError{Reason: "invalid lexical tree", Err: err}
	}
	if root.Root.Type != "root" {
		return Document{}, &DecodeError{Reason: "lexical root node missing"}
	}

	w := &lexicalWalker{}
	for _, child := range root.Root.Children {
		w.walkTopLevel(child)
	}
	doc := Document{Blocks: w.blocks, EntityMap: map[string]Entity{}}
	return doc.Normalize(), nil
}

type lexicalWalker struct {
	blocks []Block
}

func (w *lexicalWalker) walkTopLevel(node lexicalNode) {
	switch node.Type {
	case "list":
		w.walkList(node, 0)
	default:
		b := Block{Type: lexicalAlignment(node.Format), Depth: node.Indent}
		w.collectInline(node, &b)
		w.blocks = append(w.blocks, b)
	}
}

func (w *lexicalWalker) walkList(node lexicalNode, depth int) {
	blockType := BlockUnorderedList
	if node.ListType == "number" {
		blockType = BlockOrderedList
	}

	for _, item := range node.Children {
		if item.Type != "listitem" {
			continue
		}
		b := Block{Type: blockType, Depth: depth}
		var nested []lexicalNode
		for _, child := range item.Children {
			if child.Type == "list" {
				nested = append(nested, child)
				continue
			}
			w.collectInline(child, &b)
		}
		// A list item that only wraps a nested list produces no block of its own.
		if b.Text != "" || len(nested) == 0 {
			w.blocks = append(w.blocks, b)
		}
		for _, n := range nested {
			w.walkList(n, depth+1)
		}
	}
}

// collectInline appends the text below node to b, recording style ranges.
func (w *lexicalWalker) collectInline(node lexicalNode, b *Block) {
	switch node.Type {
	case "text":
		start := utf8.RuneCountInString(b.Text)
		b.Text += node.Text
		end := utf8.RuneCountInString(b.Text)
		for _, style := range lexicalStyles(node) {
			b.StyleRanges = append(b.StyleRanges, StyleRange{Start: start, End: end, Style: style})
		}
	case "linebreak":
		b.Text += "\n"
	case "tab":
		b.Text += "\t"
	default:
		for _, child := range node.Children {
			w.collectInline(child, b)
		}
	}
}

func lexicalStyles(node lexicalNode) []InlineStyle {
	format := 0
	switch f := node.Format.(type) {
	case float64:
		format = int(f)
	case int:
		format = f
	}

	var styles []InlineStyle
	if format&lexicalBold != 0 {
		styles = append(styles, StyleBold)
	}
	if format&lexicalItalic != 0 {
		styles = append(styles, StyleItalic)
	}
	if format&lexicalUnderline != 0 {
		styles = append(styles, StyleUnderline)
	}
	if c, ok := ParseStyle(node.Style).PaletteColor(); ok {
		styles = append(styles, ColorStyle(c))
	}
	return styles
}

// lexicalAlignment maps an element format ("center", "right", ...) to a block type.
// Left is the default direction and stays unstyled.
func lexicalAlignment(format interface{}) BlockType {
	s, _ := format.(string)
	switch s {
	case "center":
		return BlockCenterAlign
	case "right", "end":
		return BlockRightAlign
	}
	return BlockUnstyled
}
