package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMarkdown(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Key: "a", Type: BlockUnstyled, Text: "Hello world", StyleRanges: []StyleRange{{0, 5, StyleBold}}},
		{Key: "b", Type: BlockCenterAlign, Text: "Mid"},
		{Key: "c", Type: BlockOrderedList, Text: "one"},
		{Key: "d", Type: BlockOrderedList, Text: "two"},
		{Key: "e", Type: BlockUnorderedList, Text: "red", StyleRanges: []StyleRange{
			{0, 3, ColorStyle(ColorRed)},
			{0, 3, StyleItalic},
		}},
		{Key: "f", Type: BlockLeftAlign, Text: "under", StyleRanges: []StyleRange{{0, 5, StyleUnderline}}},
	}}

	want := "**Hello** world\n\n" +
		"<div align=\"center\">Mid</div>\n\n" +
		"1. one\n" +
		"2. two\n" +
		"- <span style=\"color:red\">_red_</span>\n\n" +
		"<u>under</u>\n"

	assert.Equal(t, want, ToMarkdown(doc))
}

func TestToMarkdownOrderedCountersRestart(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Key: "a", Type: BlockOrderedList, Text: "first"},
		{Key: "b", Type: BlockOrderedList, Text: "sub", Depth: 1},
		{Key: "c", Type: BlockOrderedList, Text: "second"},
		{Key: "d", Type: BlockUnstyled, Text: "break"},
		{Key: "e", Type: BlockOrderedList, Text: "again"},
	}}

	want := "1. first\n" +
		"  1. sub\n" +
		"2. second\n\n" +
		"break\n\n" +
		"1. again\n"

	assert.Equal(t, want, ToMarkdown(doc))
}

func TestToMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", ToMarkdown(EmptyDocument()))
}
