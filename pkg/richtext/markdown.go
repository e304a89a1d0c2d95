package richtext

import (
	"fmt"
	"sort"
	"strings"
)

// ToMarkdown renders doc as Markdown. Underline, color and alignment have no
// Markdown syntax and are written as inline HTML.
func ToMarkdown(doc Document) string {
	var sb strings.Builder
	counters := map[int]int{}
	prevList := false

	for i, b := range doc.Blocks {
		if !b.Type.IsList() {
			counters = map[int]int{}
		}
		if i > 0 {
			// Consecutive list items stay tight; everything else is a paragraph.
			if prevList && b.Type.IsList() {
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n\n")
			}
		}

		switch b.Type {
		case BlockUnorderedList:
			sb.WriteString(strings.Repeat("  ", b.Depth))
			sb.WriteString("- ")
			writeInline(&sb, b)
		case BlockOrderedList:
			for d := range counters {
				if d > b.Depth {
					delete(counters, d)
				}
			}
			counters[b.Depth]++
			sb.WriteString(strings.Repeat("  ", b.Depth))
			sb.WriteString(fmt.Sprintf("%d. ", counters[b.Depth]))
			writeInline(&sb, b)
		case BlockCenterAlign, BlockRightAlign:
			align := "center"
			if b.Type == BlockRightAlign {
				align = "right"
			}
			sb.WriteString(fmt.Sprintf("<div align=\"%s\">", align))
			writeInline(&sb, b)
			sb.WriteString("</div>")
		default:
			writeInline(&sb, b)
		}
		prevList = b.Type.IsList()
	}

	if sb.Len() == 0 {
		return ""
	}
	sb.WriteString("\n")
	return sb.String()
}

// writeInline writes the block text split at every style boundary, wrapping
// each segment in its styles (Color > Bold > Italic > Underline).
func writeInline(sb *strings.Builder, b Block) {
	runes := []rune(b.Text)
	cuts := map[int]bool{0: true, len(runes): true}
	for _, r := range b.StyleRanges {
		cuts[r.Start] = true
		cuts[r.End] = true
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		bounds = append(bounds, c)
	}
	sort.Ints(bounds)

	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if start >= end {
			continue
		}
		writeSegment(sb, string(runes[start:end]), b.StylesAt(start))
	}
}

func writeSegment(sb *strings.Builder, text string, styles []InlineStyle) {
	var color Color
	var isBold, isItalic, isUnderline bool
	for _, s := range styles {
		switch s {
		case StyleBold:
			isBold = true
		case StyleItalic:
			isItalic = true
		case StyleUnderline:
			isUnderline = true
		default:
			// The first palette color wins when several are applied.
			if c, ok := s.Color(); ok && color == "" {
				color = c
			}
		}
	}

	if color != "" {
		sb.WriteString(fmt.Sprintf("<span style=\"color:%s\">", color.CSS()))
	}
	if isBold {
		sb.WriteString("**")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isUnderline {
		sb.WriteString("<u>")
	}

	sb.WriteString(text)

	if isUnderline {
		sb.WriteString("</u>")
	}
	if isItalic {
		sb.WriteString("_")
	}
	if isBold {
		sb.WriteString("**")
	}
	if color != "" {
		sb.WriteString("</span>")
	}
}
