// Package render draws notes on an ANSI terminal.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"rich-notes-be/pkg/richtext"
	"rich-notes-be/pkg/session"

	"github.com/fatih/color"
)

const defaultWidth = 80

var paletteAttrs = map[richtext.Color]color.Attribute{
	richtext.ColorRed:    color.FgRed,
	richtext.ColorBlue:   color.FgBlue,
	richtext.ColorGreen:  color.FgGreen,
	richtext.ColorPurple: color.FgMagenta,
	richtext.ColorOrange: color.FgYellow,
}

type Renderer struct {
	w       io.Writer
	width   int
	noColor bool
}

type Option func(*Renderer)

// WithWidth sets the column count used to align centered and right blocks.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithoutColor writes plain text, e.g. when stdout is not a terminal.
func WithoutColor() Option {
	return func(r *Renderer) { r.noColor = true }
}

func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{w: w, width: defaultWidth, noColor: color.NoColor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) paint(text string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	if r.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(text)
}

// Document writes every block of doc on its own line.
func (r *Renderer) Document(doc richtext.Document) error {
	counters := map[int]int{}
	for _, b := range doc.Blocks {
		if b.Type != richtext.BlockOrderedList {
			counters = map[int]int{}
		}

		line := r.inline(b)
		switch b.Type {
		case richtext.BlockUnorderedList:
			line = strings.Repeat("  ", b.Depth) + "• " + line
		case richtext.BlockOrderedList:
			for d := range counters {
				if d > b.Depth {
					delete(counters, d)
				}
			}
			counters[b.Depth]++
			line = strings.Repeat("  ", b.Depth) + fmt.Sprintf("%d. ", counters[b.Depth]) + line
		case richtext.BlockCenterAlign:
			line = strings.Repeat(" ", r.padding(b.Text)/2) + line
		case richtext.BlockRightAlign:
			line = strings.Repeat(" ", r.padding(b.Text)) + line
		}

		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) padding(text string) int {
	if n := r.width - utf8.RuneCountInString(text); n > 0 {
		return n
	}
	return 0
}

// inline splits a block at every style boundary and paints each segment.
func (r *Renderer) inline(b richtext.Block) string {
	runes := []rune(b.Text)
	cuts := map[int]bool{0: true, len(runes): true}
	for _, sr := range b.StyleRanges {
		cuts[sr.Start] = true
		cuts[sr.End] = true
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		if c >= 0 && c <= len(runes) {
			bounds = append(bounds, c)
		}
	}
	sort.Ints(bounds)

	var sb strings.Builder
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if start >= end {
			continue
		}
		sb.WriteString(r.paint(string(runes[start:end]), attributes(b.StylesAt(start))...))
	}
	return sb.String()
}

func attributes(styles []richtext.InlineStyle) []color.Attribute {
	var attrs []color.Attribute
	colored := false
	for _, s := range styles {
		switch s {
		case richtext.StyleBold:
			attrs = append(attrs, color.Bold)
		case richtext.StyleItalic:
			attrs = append(attrs, color.Italic)
		case richtext.StyleUnderline:
			attrs = append(attrs, color.Underline)
		default:
			if c, ok := s.Color(); ok && !colored {
				attrs = append(attrs, paletteAttrs[c])
				colored = true
			}
		}
	}
	return attrs
}

// Summaries writes the note list, one note per line.
func (r *Renderer) Summaries(summaries []session.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(r.w, r.paint("No notes yet", color.Faint))
		return err
	}
	for _, s := range summaries {
		line := fmt.Sprintf("%s  %s  %s",
			r.paint(s.ID, color.Faint),
			r.paint(s.Title, color.Bold),
			r.paint(s.Date, color.FgCyan),
		)
		if s.Preview != "" {
			line += "\n    " + s.Preview
		}
		if _, err := fmt.Fprintln(r.w, line); err != nil {
			return err
		}
	}
	return nil
}

// Session writes the title bar of the open note followed by its draft.
func (r *Renderer) Session(s session.Session) error {
	if !s.IsOpen {
		_, err := fmt.Fprintln(r.w, r.paint("No note open", color.Faint))
		return err
	}

	title := r.paint(s.DraftTitle, color.Bold, color.Underline)
	if s.IsDirty {
		title += r.paint(" *", color.FgYellow)
	}
	if s.IsSaving {
		title += r.paint(" (saving)", color.Faint)
	}
	if _, err := fmt.Fprintln(r.w, title); err != nil {
		return err
	}
	return r.Document(s.DraftDocument)
}

// Notice writes a machine notice in its level's color.
func (r *Renderer) Notice(n session.Notice) error {
	attr := color.FgGreen
	if n.Level == session.NoticeError {
		attr = color.FgRed
	}
	_, err := fmt.Fprintln(r.w, r.paint(n.Message, attr))
	return err
}
