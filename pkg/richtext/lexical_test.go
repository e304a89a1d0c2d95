package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeserializeLexicalTree(t *testing.T) {
	input := `{"root":{"type":"root","children":[
		{"type":"paragraph","format":"center","children":[
			{"type":"text","text":"Hi ","format":0},
			{"type":"text","text":"there","format":1,"style":"color: #FF0000;"}
		]},
		{"type":"list","listType":"number","children":[
			{"type":"listitem","children":[{"type":"text","text":"one","format":10}]},
			{"type":"listitem","children":[
				{"type":"list","listType":"bullet","children":[
					{"type":"listitem","children":[{"type":"text","text":"nested"}]}
				]}
			]}
		]},
		{"type":"paragraph","children":[{"type":"text","text":"a"},{"type":"linebreak"},{"type":"text","text":"b"}]}
	]}}`

	doc := Deserialize(input)

	require.Len(t, doc.Blocks, 4)

	assert.Equal(t, BlockCenterAlign, doc.Blocks[0].Type)
	assert.Equal(t, "Hi there", doc.Blocks[0].Text)
	assert.Equal(t, []StyleRange{
		{3, 8, StyleBold},
		{3, 8, ColorStyle(ColorRed)},
	}, doc.Blocks[0].StyleRanges)

	assert.Equal(t, BlockOrderedList, doc.Blocks[1].Type)
	assert.Equal(t, "one", doc.Blocks[1].Text)
	assert.Equal(t, []StyleRange{
		{0, 3, StyleItalic},
		{0, 3, StyleUnderline},
	}, doc.Blocks[1].StyleRanges)

	assert.Equal(t, BlockUnorderedList, doc.Blocks[2].Type)
	assert.Equal(t, 1, doc.Blocks[2].Depth)
	assert.Equal(t, "nested", doc.Blocks[2].Text)

	assert.Equal(t, BlockUnstyled, doc.Blocks[3].Type)
	assert.Equal(t, "a\nb", doc.Blocks[3].Text)
}

func TestDeserializeBrokenLexicalFallsBack(t *testing.T) {
	input := `{"root":{"type":"paragraph"}}`

	doc := Deserialize(input)

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, input, PlainText(doc))
}

func TestParseStyle(t *testing.T) {
	styles := ParseStyle("color: #F97316; background-color: #BFDBFE;")

	assert.Equal(t, "#F97316", styles["color"])
	assert.Equal(t, "#BFDBFE", styles["background-color"])

	_, ok := styles.PaletteColor()
	assert.False(t, ok)

	c, ok := ParseStyle("color: orange").PaletteColor()
	require.True(t, ok)
	assert.Equal(t, ColorOrange, c)
}

func TestParseInlineStyle(t *testing.T) {
	tests := []struct {
		in   string
		want InlineStyle
		ok   bool
	}{
		{"bold", StyleBold, true},
		{"ITALIC", StyleItalic, true},
		{"purple", ColorStyle(ColorPurple), true},
		{"color-green", ColorStyle(ColorGreen), true},
		{"COLOR-PINK", "", false},
		{"strike", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseInlineStyle(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
