package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyDocument(t *testing.T) {
	doc := EmptyDocument()

	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, BlockUnstyled, doc.Blocks[0].Type)
	assert.Equal(t, "", doc.Blocks[0].Text)
	assert.NotEmpty(t, doc.Blocks[0].Key)
	assert.Equal(t, "", PlainText(doc))
}

func TestPlainText(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Key: "a", Type: BlockUnstyled, Text: "Groceries", StyleRanges: []StyleRange{{0, 9, StyleBold}}},
		{Key: "b", Type: BlockUnorderedList, Text: "Milk"},
		{Key: "c", Type: BlockUnorderedList, Text: ""},
		{Key: "d", Type: BlockCenterAlign, Text: "eggs"},
	}}

	assert.Equal(t, "Groceries\nMilk\n\neggs", PlainText(doc))
	assert.Equal(t, PlainText(doc), doc.PlainText())
}

func TestCloneSharesNothing(t *testing.T) {
	doc := Document{
		Blocks: []Block{{
			Key:         "a",
			Type:        BlockUnstyled,
			Text:        "hello",
			StyleRanges: []StyleRange{{0, 2, StyleBold}},
			Data:        map[string]interface{}{"k": "v"},
		}},
		EntityMap: map[string]Entity{"0": {Type: "LINK"}},
	}

	c := doc.Clone()
	c.Blocks[0].StyleRanges[0].End = 5
	c.Blocks[0].Data["k"] = "changed"
	c.EntityMap["1"] = Entity{Type: "LINK"}

	assert.Equal(t, 2, doc.Blocks[0].StyleRanges[0].End)
	assert.Equal(t, "v", doc.Blocks[0].Data["k"])
	assert.Len(t, doc.EntityMap, 1)
}

func TestNormalize(t *testing.T) {
	t.Run("merges and clamps ranges", func(t *testing.T) {
		doc := Document{Blocks: []Block{{
			Key:  "a",
			Text: "hello",
			StyleRanges: []StyleRange{
				{3, 9, StyleBold},
				{0, 2, StyleBold},
				{1, 3, StyleBold},
				{2, 2, StyleItalic},
				{-4, 1, StyleUnderline},
			},
		}}}

		got := doc.Normalize()

		assert.Equal(t, BlockUnstyled, got.Blocks[0].Type)
		assert.Equal(t, []StyleRange{
			{0, 5, StyleBold},
			{0, 1, StyleUnderline},
		}, got.Blocks[0].StyleRanges)
	})

	t.Run("fixes missing and duplicate keys", func(t *testing.T) {
		doc := Document{Blocks: []Block{{Key: "x"}, {Key: "x"}, {}}}

		got := doc.Normalize()

		keys := map[string]bool{}
		for _, b := range got.Blocks {
			require.NotEmpty(t, b.Key)
			keys[b.Key] = true
		}
		assert.Len(t, keys, 3)
		assert.Equal(t, "x", got.Blocks[0].Key)
		assert.Equal(t, got.Blocks, doc.Normalize().Blocks)
	})

	t.Run("generated keys avoid later explicit keys", func(t *testing.T) {
		doc := Document{Blocks: []Block{{}, {Key: "b0"}}}

		got := doc.Normalize()

		assert.Equal(t, "b0-1", got.Blocks[0].Key)
		assert.Equal(t, "b0", got.Blocks[1].Key)
	})

	t.Run("never returns zero blocks", func(t *testing.T) {
		got := Document{}.Normalize()
		require.Len(t, got.Blocks, 1)
		assert.Equal(t, "", PlainText(got))
	})
}

func TestStylesAt(t *testing.T) {
	b := Block{Text: "abcdef", StyleRanges: []StyleRange{
		{0, 4, ColorStyle(ColorRed)},
		{2, 6, StyleBold},
	}}

	assert.Equal(t, []InlineStyle{ColorStyle(ColorRed)}, b.StylesAt(0))
	assert.Equal(t, []InlineStyle{StyleBold, ColorStyle(ColorRed)}, b.StylesAt(3))
	assert.Nil(t, b.StylesAt(6))
}
