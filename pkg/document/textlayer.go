package document

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Grouping tolerances for assembling selected characters into words and
// lines, in PDF units.
const (
	selectXTolerance = 3.0
	selectYTolerance = 3.0
)

// Char is a single positioned character in native page space (origin
// bottom-left, Y up).
type Char struct {
	Text string
	X0   float64
	Y0   float64
	X1   float64
	Y1   float64
}

// TextLayer holds the positioned characters of one page and supports
// region-based text selection.
type TextLayer struct {
	chars []Char
}

// NewTextLayer builds a text layer from already positioned characters.
func NewTextLayer(chars []Char) *TextLayer {
	return &TextLayer{chars: chars}
}

// Chars returns the characters of the layer in emission order.
func (t *TextLayer) Chars() []Char {
	return t.chars
}

// Select returns the text overlapping the native-space region
// (x0,y0)-(x1,y1). Characters are grouped into lines top-to-bottom and
// words left-to-right, joined with newlines and spaces respectively.
func (t *TextLayer) Select(x0, y0, x1, y1 float64) string {
	if t == nil || len(t.chars) == 0 {
		return ""
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}

	var selected []Char
	for _, c := range t.chars {
		cx := (c.X0 + c.X1) / 2
		cy := (c.Y0 + c.Y1) / 2
		if cx >= x0 && cx <= x1 && cy >= y0 && cy <= y1 {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		return ""
	}

	// Top-to-bottom in native space means descending Y.
	sort.SliceStable(selected, func(i, j int) bool {
		if abs(selected[i].Y0-selected[j].Y0) > selectYTolerance {
			return selected[i].Y0 > selected[j].Y0
		}
		return selected[i].X0 < selected[j].X0
	})

	var lines []string
	var line []Char
	lastY := selected[0].Y0
	for _, c := range selected {
		if len(line) > 0 && abs(c.Y0-lastY) > selectYTolerance {
			lines = append(lines, joinLine(line))
			line = line[:0]
		}
		line = append(line, c)
		lastY = c.Y0
	}
	if len(line) > 0 {
		lines = append(lines, joinLine(line))
	}

	return strings.Join(lines, "\n")
}

// joinLine concatenates one line of characters, inserting a space wherever
// the horizontal gap exceeds the tolerance.
func joinLine(chars []Char) string {
	var b strings.Builder
	lastX1 := chars[0].X0
	for i, c := range chars {
		if i > 0 && c.X0-lastX1 > selectXTolerance {
			b.WriteString(" ")
		}
		b.WriteString(c.Text)
		lastX1 = c.X1
	}
	return b.String()
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// extractTextLayer parses the page's content streams into positioned
// characters. Glyph advances are approximated from the font size; the
// layer is used for region selection, not layout-faithful extraction.
func extractTextLayer(doc *Document, pageDict types.Dict) (*TextLayer, error) {
	if doc == nil || pageDict == nil {
		return NewTextLayer(nil), nil
	}

	content, err := doc.pageContent(pageDict)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return NewTextLayer(nil), nil
	}

	chars := parseTextContent(content)
	return NewTextLayer(chars), nil
}

// pageContent collects and decodes the page's content stream bytes.
func (d *Document) pageContent(pageDict types.Dict) ([]byte, error) {
	contents := pageDict["Contents"]
	if contents == nil || d.ctx == nil {
		return nil, nil
	}

	var streams [][]byte

	appendStream := func(ref types.IndirectRef) error {
		sd, _, err := d.ctx.DereferenceStreamDict(ref)
		if err != nil {
			return fmt.Errorf("failed to dereference content stream: %w", err)
		}
		if sd == nil {
			return nil
		}
		if len(sd.Content) == 0 {
			if err := sd.Decode(); err != nil {
				return fmt.Errorf("failed to decode content stream: %w", err)
			}
		}
		streams = append(streams, sd.Content)
		return nil
	}

	switch v := contents.(type) {
	case *types.IndirectRef:
		if err := appendStream(*v); err != nil {
			return nil, err
		}
	case types.IndirectRef:
		if err := appendStream(v); err != nil {
			return nil, err
		}
	case types.Array:
		for _, item := range v {
			switch ref := item.(type) {
			case *types.IndirectRef:
				if err := appendStream(*ref); err != nil {
					return nil, err
				}
			case types.IndirectRef:
				if err := appendStream(ref); err != nil {
					return nil, err
				}
			}
		}
	}

	var combined []byte
	for _, s := range streams {
		combined = append(combined, s...)
		combined = append(combined, '\n')
	}
	return combined, nil
}

// textState tracks the subset of the content stream text machinery needed
// to place characters: current position, font size and leading.
type textState struct {
	x, y     float64
	lineX    float64
	lineY    float64
	fontSize float64
	leading  float64
	inText   bool
	chars    []Char
}

func (s *textState) setPosition(x, y float64) {
	s.lineX, s.lineY = x, y
	s.x, s.y = x, y
}

func (s *textState) nextLine() {
	s.lineY -= s.leading
	s.x, s.y = s.lineX, s.lineY
}

func (s *textState) show(text string) {
	if !s.inText {
		return
	}
	size := s.fontSize
	if size <= 0 {
		size = 12
	}
	for _, r := range text {
		w := size * 0.5
		s.chars = append(s.chars, Char{
			Text: string(r),
			X0:   s.x,
			Y0:   s.y,
			X1:   s.x + w,
			Y1:   s.y + size,
		})
		s.x += w
	}
}

// parseTextContent interprets the text-positioning and text-showing
// operators of a content stream. Graphics operators are skipped.
func parseTextContent(content []byte) []Char {
	state := &textState{}
	var operands []token

	lex := newContentLexer(content)
	for {
		tok, ok := lex.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "BT":
			state.inText = true
			state.setPosition(0, 0)
		case "ET":
			state.inText = false
		case "Tf":
			if n, ok := lastNumbers(operands, 1); ok {
				state.fontSize = n[0]
			}
		case "TL":
			if n, ok := lastNumbers(operands, 1); ok {
				state.leading = n[0]
			}
		case "Td":
			if n, ok := lastNumbers(operands, 2); ok {
				state.setPosition(state.lineX+n[0], state.lineY+n[1])
			}
		case "TD":
			if n, ok := lastNumbers(operands, 2); ok {
				state.leading = -n[1]
				state.setPosition(state.lineX+n[0], state.lineY+n[1])
			}
		case "Tm":
			if n, ok := lastNumbers(operands, 6); ok {
				if n[3] != 0 {
					state.fontSizeScale(n[3])
				}
				state.setPosition(n[4], n[5])
			}
		case "T*":
			state.nextLine()
		case "Tj":
			if s, ok := lastString(operands); ok {
				state.show(s)
			}
		case "'":
			state.nextLine()
			if s, ok := lastString(operands); ok {
				state.show(s)
			}
		case "\"":
			state.nextLine()
			if s, ok := lastString(operands); ok {
				state.show(s)
			}
		case "TJ":
			if arr, ok := lastArray(operands); ok {
				size := state.fontSize
				if size <= 0 {
					size = 12
				}
				for _, el := range arr {
					switch el.kind {
					case tokString:
						state.show(el.text)
					case tokNumber:
						if v, err := strconv.ParseFloat(el.text, 64); err == nil {
							state.x -= v / 1000 * size
						}
					}
				}
			}
		}
		operands = operands[:0]
	}

	return state.chars
}

// fontSizeScale folds a text matrix Y scale into the effective font size.
func (s *textState) fontSizeScale(scale float64) {
	if s.fontSize == 0 {
		s.fontSize = scale
		return
	}
	if scale != 1 {
		s.fontSize *= scale
	}
}

func lastNumbers(operands []token, n int) ([]float64, bool) {
	if len(operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		tok := operands[len(operands)-n+i]
		if tok.kind != tokNumber {
			return nil, false
		}
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func lastString(operands []token) (string, bool) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == tokString {
			return operands[i].text, true
		}
	}
	return "", false
}

func lastArray(operands []token) ([]token, bool) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == tokArray {
			return operands[i].elems, true
		}
	}
	return nil, false
}
