package richtext

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleBlock(text string, ranges ...StyleRange) Document {
	return Document{
		Blocks:    []Block{{Key: "k", Type: BlockUnstyled, Text: text, StyleRanges: ranges}},
		EntityMap: map[string]Entity{},
	}
}

func TestToggleInlineStyle(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		sel    Selection
		style  InlineStyle
		want   []StyleRange
	}{
		{
			name:  "adds to unstyled range",
			doc:   singleBlock("Hello"),
			sel:   Range("k", 1, 4),
			style: StyleBold,
			want:  []StyleRange{{1, 4, StyleBold}},
		},
		{
			name:  "extends partial coverage to the whole range",
			doc:   singleBlock("Hello", StyleRange{0, 3, StyleBold}),
			sel:   Range("k", 0, 5),
			style: StyleBold,
			want:  []StyleRange{{0, 5, StyleBold}},
		},
		{
			name:  "removes from fully covered range",
			doc:   singleBlock("Hello", StyleRange{0, 5, StyleBold}),
			sel:   Range("k", 1, 3),
			style: StyleBold,
			want:  []StyleRange{{0, 1, StyleBold}, {3, 5, StyleBold}},
		},
		{
			name:  "merges adjacent range of the same style",
			doc:   singleBlock("Hello", StyleRange{0, 2, StyleItalic}),
			sel:   Range("k", 2, 4),
			style: StyleItalic,
			want:  []StyleRange{{0, 4, StyleItalic}},
		},
		{
			name:  "keeps distinct styles on the same text",
			doc:   singleBlock("Hello", StyleRange{0, 5, StyleBold}),
			sel:   Range("k", 0, 5),
			style: ColorStyle(ColorBlue),
			want:  []StyleRange{{0, 5, StyleBold}, {0, 5, ColorStyle(ColorBlue)}},
		},
		{
			name:  "allows two colors on the same text",
			doc:   singleBlock("Hello", StyleRange{0, 5, ColorStyle(ColorRed)}),
			sel:   Range("k", 0, 5),
			style: ColorStyle(ColorGreen),
			want:  []StyleRange{{0, 5, ColorStyle(ColorGreen)}, {0, 5, ColorStyle(ColorRed)}},
		},
		{
			name:  "collapsed selection is a no-op",
			doc:   singleBlock("Hello"),
			sel:   Caret("k", 2),
			style: StyleBold,
			want:  nil,
		},
		{
			name:  "unknown style is a no-op",
			doc:   singleBlock("Hello"),
			sel:   Range("k", 0, 5),
			style: InlineStyle("STRIKETHROUGH"),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleInlineStyle(tt.doc, tt.sel, tt.style)
			assert.Equal(t, tt.want, got.Blocks[0].StyleRanges)
		})
	}
}

func TestToggleInlineStyleDoesNotMutateInput(t *testing.T) {
	doc := singleBlock("Hello", StyleRange{0, 2, StyleBold})

	ToggleInlineStyle(doc, Range("k", 0, 5), StyleBold)

	assert.Equal(t, []StyleRange{{0, 2, StyleBold}}, doc.Blocks[0].StyleRanges)
}

func TestToggleInlineStyleInvolution(t *testing.T) {
	styles := []InlineStyle{StyleBold, StyleItalic, StyleUnderline, ColorStyle(ColorPurple)}
	base := singleBlock("The quick brown fox", StyleRange{0, 3, StyleUnderline})
	sel := Range("k", 4, 15)

	for _, style := range styles {
		t.Run(string(style), func(t *testing.T) {
			twice := ToggleInlineStyle(ToggleInlineStyle(base, sel, style), sel, style)
			assert.Equal(t, base.Blocks[0].StyleRanges, twice.Blocks[0].StyleRanges)
		})
	}
}

func TestToggleInlineStyleAcrossBlocks(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Key: "a", Type: BlockUnstyled, Text: "abc"},
		{Key: "b", Type: BlockUnstyled, Text: ""},
		{Key: "c", Type: BlockUnstyled, Text: "def"},
	}}
	sel := Selection{BlockKey: "a", StartOffset: 1, EndBlockKey: "c", EndOffset: 2}

	on := ToggleInlineStyle(doc, sel, StyleBold)
	assert.Equal(t, []StyleRange{{1, 3, StyleBold}}, on.Blocks[0].StyleRanges)
	assert.Nil(t, on.Blocks[1].StyleRanges)
	assert.Equal(t, []StyleRange{{0, 2, StyleBold}}, on.Blocks[2].StyleRanges)

	off := ToggleInlineStyle(on, sel, StyleBold)
	assert.Nil(t, off.Blocks[0].StyleRanges)
	assert.Nil(t, off.Blocks[2].StyleRanges)
}

func TestInvalidSelection(t *testing.T) {
	doc := singleBlock("Hello")

	tests := []struct {
		name string
		sel  Selection
	}{
		{"unknown block", Range("missing", 0, 1)},
		{"offset past end", Range("k", 0, 9)},
		{"negative offset", Range("k", -1, 2)},
		{"reversed", Range("k", 4, 2)},
		{"unknown end block", Selection{BlockKey: "k", EndBlockKey: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var selErr *InvalidSelectionError
			require.True(t, errors.As(ValidateSelection(doc, tt.sel), &selErr))

			assert.Equal(t, doc, ToggleInlineStyle(doc, tt.sel, StyleBold))
			assert.Equal(t, doc, ToggleBlockType(doc, tt.sel, BlockCenterAlign))
		})
	}
}

func TestToggleBlockType(t *testing.T) {
	t.Run("list replaces alignment", func(t *testing.T) {
		doc := singleBlock("Hello")

		doc = ToggleBlockType(doc, Caret("k", 0), BlockCenterAlign)
		require.Equal(t, BlockCenterAlign, doc.Blocks[0].Type)

		doc = ToggleBlockType(doc, Caret("k", 0), BlockOrderedList)
		assert.Equal(t, BlockOrderedList, doc.Blocks[0].Type)
	})

	t.Run("same type toggles back to unstyled", func(t *testing.T) {
		doc := ToggleBlockType(singleBlock("Hello"), Caret("k", 0), BlockRightAlign)
		doc = ToggleBlockType(doc, Caret("k", 0), BlockRightAlign)

		assert.Equal(t, BlockUnstyled, doc.Blocks[0].Type)
	})

	t.Run("alignment variants are exclusive", func(t *testing.T) {
		doc := ToggleBlockType(singleBlock("Hello"), Caret("k", 0), BlockLeftAlign)
		doc = ToggleBlockType(doc, Caret("k", 0), BlockRightAlign)

		assert.Equal(t, BlockRightAlign, doc.Blocks[0].Type)
	})

	t.Run("list variants are exclusive and reset depth on leaving lists", func(t *testing.T) {
		doc := singleBlock("Hello")
		doc.Blocks[0].Type = BlockUnorderedList
		doc.Blocks[0].Depth = 2

		doc = ToggleBlockType(doc, Caret("k", 0), BlockOrderedList)
		assert.Equal(t, BlockOrderedList, doc.Blocks[0].Type)
		assert.Equal(t, 2, doc.Blocks[0].Depth)

		doc = ToggleBlockType(doc, Caret("k", 0), BlockCenterAlign)
		assert.Equal(t, BlockCenterAlign, doc.Blocks[0].Type)
		assert.Equal(t, 0, doc.Blocks[0].Depth)
	})

	t.Run("applies to every selected block using the first block's type", func(t *testing.T) {
		doc := Document{Blocks: []Block{
			{Key: "a", Type: BlockUnstyled, Text: "one"},
			{Key: "b", Type: BlockCenterAlign, Text: "two"},
			{Key: "c", Type: BlockUnstyled, Text: "three"},
		}}
		sel := Selection{BlockKey: "a", StartOffset: 0, EndBlockKey: "b", EndOffset: 1}

		doc = ToggleBlockType(doc, sel, BlockCenterAlign)

		assert.Equal(t, BlockCenterAlign, doc.Blocks[0].Type)
		assert.Equal(t, BlockCenterAlign, doc.Blocks[1].Type)
		assert.Equal(t, BlockUnstyled, doc.Blocks[2].Type)
	})
}

func TestHandleKeyCommand(t *testing.T) {
	doc := singleBlock("Hello")

	got, res := HandleKeyCommand(doc, Range("k", 0, 5), "bold")
	assert.Equal(t, Handled, res)
	assert.Equal(t, []StyleRange{{0, 5, StyleBold}}, got.Blocks[0].StyleRanges)

	got, res = HandleKeyCommand(doc, Range("k", 0, 5), "underline")
	assert.Equal(t, Handled, res)
	assert.Equal(t, []StyleRange{{0, 5, StyleUnderline}}, got.Blocks[0].StyleRanges)

	got, res = HandleKeyCommand(doc, Range("k", 0, 5), "backspace")
	assert.Equal(t, NotHandled, res)
	assert.Equal(t, doc, got)
}

func TestCurrentInlineStyles(t *testing.T) {
	doc := singleBlock("Hello", StyleRange{0, 2, StyleBold}, StyleRange{1, 5, StyleItalic})

	assert.Equal(t, []InlineStyle{StyleBold}, CurrentInlineStyles(doc, Caret("k", 1)))
	assert.Equal(t, []InlineStyle{StyleBold}, CurrentInlineStyles(doc, Caret("k", 0)))
	assert.Equal(t, []InlineStyle{StyleItalic}, CurrentInlineStyles(doc, Range("k", 2, 4)))
	assert.Nil(t, CurrentInlineStyles(doc, Caret("missing", 0)))

	blockType, ok := BlockTypeAt(doc, Caret("k", 0))
	assert.True(t, ok)
	assert.Equal(t, BlockUnstyled, blockType)
}

func TestInsertText(t *testing.T) {
	tests := []struct {
		name     string
		sel      Selection
		text     string
		wantText string
		want     []StyleRange
	}{
		{"append inherits style", Caret("k", 5), "!", "Hello!", []StyleRange{{0, 6, StyleBold}}},
		{"prepend shifts style", Caret("k", 0), "X", "XHello", []StyleRange{{1, 6, StyleBold}}},
		{"delete inside range", Range("k", 1, 3), "", "Hlo", []StyleRange{{0, 3, StyleBold}}},
		{"replace whole range", Range("k", 0, 5), "Bye", "Bye", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := singleBlock("Hello", StyleRange{0, 5, StyleBold})

			got := InsertText(doc, tt.sel, tt.text)

			assert.Equal(t, tt.wantText, got.Blocks[0].Text)
			assert.Equal(t, tt.want, got.Blocks[0].StyleRanges)
		})
	}
}

func TestAppendBlock(t *testing.T) {
	doc := AppendBlock(EmptyDocument(), BlockUnorderedList, "Milk")

	require.Len(t, doc.Blocks, 2)
	assert.NotEqual(t, doc.Blocks[0].Key, doc.Blocks[1].Key)
	assert.Equal(t, BlockUnorderedList, doc.Blocks[1].Type)
	assert.Equal(t, "\nMilk", PlainText(doc))
}
