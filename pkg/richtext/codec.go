package richtext

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DecodeError describes content that is not in the portable encoding.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode rich text: %s: %v", e.Reason, e.Err)
	}
	return "decode rich text: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Wire form, compatible with the raw content of draft-js editors. Offsets
// and lengths are UTF-16 code units.
type rawDocument struct {
	Blocks    []rawBlock        `json:"blocks"`
	EntityMap map[string]Entity `json:"entityMap"`
}

type rawBlock struct {
	Key               string                 `json:"key"`
	Text              string                 `json:"text"`
	Type              string                 `json:"type"`
	Depth             int                    `json:"depth"`
	InlineStyleRanges []rawStyleRange        `json:"inlineStyleRanges"`
	EntityRanges      []rawEntityRange       `json:"entityRanges"`
	Data              map[string]interface{} `json:"data"`
}

type rawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

type rawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

// Codec converts documents to and from their persisted string form.
type Codec struct {
	logger *zap.Logger
}

// NewCodec returns a codec that reports decode fallbacks to logger.
// A nil logger discards them.
func NewCodec(logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{logger: logger.Named("richtext")}
}

var defaultCodec = NewCodec(nil)

// Serialize encodes doc with the default codec.
func Serialize(doc Document) string { return defaultCodec.Serialize(doc) }

// Deserialize decodes input with the default codec.
func Deserialize(input string) Document { return defaultCodec.Deserialize(input) }

// ExtractPreviewText returns the plain text of input with the default codec.
func ExtractPreviewText(input string) string { return defaultCodec.ExtractPreviewText(input) }

// Serialize encodes doc as raw JSON. Equal documents encode to equal strings.
func (c *Codec) Serialize(doc Document) string {
	doc = doc.Normalize()
	raw := rawDocument{
		Blocks:    make([]rawBlock, len(doc.Blocks)),
		EntityMap: doc.EntityMap,
	}
	if raw.EntityMap == nil {
		raw.EntityMap = map[string]Entity{}
	}

	for i, b := range doc.Blocks {
		units := utf16Prefix(b.Text)
		rb := rawBlock{
			Key:               b.Key,
			Text:              b.Text,
			Type:              string(b.Type),
			Depth:             b.Depth,
			InlineStyleRanges: make([]rawStyleRange, 0, len(b.StyleRanges)),
			EntityRanges:      make([]rawEntityRange, 0, len(b.EntityRanges)),
			Data:              b.Data,
		}
		if rb.Data == nil {
			rb.Data = map[string]interface{}{}
		}
		for _, r := range b.StyleRanges {
			rb.InlineStyleRanges = append(rb.InlineStyleRanges, rawStyleRange{
				Offset: units[r.Start],
				Length: units[r.End] - units[r.Start],
				Style:  string(r.Style),
			})
		}
		for _, r := range b.EntityRanges {
			rb.EntityRanges = append(rb.EntityRanges, rawEntityRange{
				Offset: units[r.Start],
				Length: units[r.End] - units[r.Start],
				Key:    r.Key,
			})
		}
		raw.Blocks[i] = rb
	}

	out, err := json.Marshal(raw)
	if err != nil {
		// Only reachable with unmarshalable values smuggled into Data.
		c.logger.Warn("serialize rich text, falling back to plain text", zap.Error(err))
		return PlainText(doc)
	}
	return string(out)
}

// Deserialize decodes input. It never fails: empty input gives an empty
// document and content in no known encoding becomes a single unstyled block
// holding input verbatim.
func (c *Codec) Deserialize(input string) Document {
	doc, err := c.DeserializeStrict(input)
	if err != nil {
		c.logger.Warn("content is not rich text, treating as plain text",
			zap.Error(err), zap.Int("length", len(input)))
		return FromPlainText(input)
	}
	return doc
}

// DeserializeStrict decodes input without the plain text fallback.
// Lexical editor trees are converted as well.
func (c *Codec) DeserializeStrict(input string) (Document, error) {
	if input == "" {
		return EmptyDocument(), nil
	}

	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") {
		return Document{}, &DecodeError{Reason: "not a JSON object"}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return Document{}, &DecodeError{Reason: "invalid JSON", Err: err}
	}
	if _, ok := probe["blocks"]; !ok {
		if _, ok := probe["root"]; ok {
			return parseLexical(trimmed)
		}
		return Document{}, &DecodeError{Reason: `missing "blocks"`}
	}

	var raw rawDocument
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return Document{}, &DecodeError{Reason: "unexpected block layout", Err: err}
	}
	return fromRaw(raw), nil
}

func fromRaw(raw rawDocument) Document {
	doc := Document{
		Blocks:    make([]Block, 0, len(raw.Blocks)),
		EntityMap: raw.EntityMap,
	}
	for _, rb := range raw.Blocks {
		units := utf16Prefix(rb.Text)
		b := Block{
			Key:   rb.Key,
			Type:  BlockType(rb.Type),
			Text:  rb.Text,
			Depth: rb.Depth,
			Data:  rb.Data,
		}
		if len(b.Data) == 0 {
			b.Data = nil
		}
		for _, r := range rb.InlineStyleRanges {
			b.StyleRanges = append(b.StyleRanges, StyleRange{
				Start: runeOffset(units, r.Offset),
				End:   runeOffset(units, r.Offset+r.Length),
				Style: InlineStyle(r.Style),
			})
		}
		for _, r := range rb.EntityRanges {
			b.EntityRanges = append(b.EntityRanges, EntityRange{
				Start: runeOffset(units, r.Offset),
				End:   runeOffset(units, r.Offset+r.Length),
				Key:   r.Key,
			})
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	if len(doc.EntityMap) == 0 {
		doc.EntityMap = map[string]Entity{}
	}
	return doc.Normalize()
}

// ExtractPreviewText returns the plain text of input. Anything that cannot
// be decoded, including a panic while decoding, yields input unchanged.
func (c *Codec) ExtractPreviewText(input string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("preview extraction panicked", zap.Any("panic", r))
			text = input
		}
	}()
	doc, err := c.DeserializeStrict(input)
	if err != nil {
		return input
	}
	return PlainText(doc)
}

// Preview returns at most max runes of the plain text of input, with newlines
// folded to spaces and an ellipsis when truncated. max <= 0 means no limit.
func (c *Codec) Preview(input string, max int) string {
	text := strings.Join(strings.Fields(c.ExtractPreviewText(input)), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}

// Preview uses the default codec.
func Preview(input string, max int) string { return defaultCodec.Preview(input, max) }

// utf16Prefix returns, for each rune index i in text (and len), the number of
// UTF-16 code units before it.
func utf16Prefix(text string) []int {
	prefix := make([]int, 1, utf8.RuneCountInString(text)+1)
	units := 0
	for _, r := range text {
		units += utf16.RuneLen(r)
		prefix = append(prefix, units)
	}
	return prefix
}

// runeOffset converts a UTF-16 offset to a rune offset, rounding up when the
// offset falls inside a surrogate pair.
func runeOffset(prefix []int, units int) int {
	if units <= 0 {
		return 0
	}
	return sort.SearchInts(prefix, units)
}

// Equal reports whether a and b serialize to the same content.
func Equal(a, b Document) bool {
	return Serialize(a) == Serialize(b)
}
