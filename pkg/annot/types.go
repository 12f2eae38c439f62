package annot

import "fmt"

// Kind is the markup annotation kind. Exported highlights keep the kind
// they were read with instead of collapsing everything to a highlight.
type Kind int

const (
	KindHighlight Kind = iota
	KindUnderline
	KindStrikeOut
)

func (k Kind) String() string {
	switch k {
	case KindUnderline:
		return "underline"
	case KindStrikeOut:
		return "strikeout"
	default:
		return "highlight"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "highlight":
		*k = KindHighlight
	case "underline":
		*k = KindUnderline
	case "strikeout":
		*k = KindStrikeOut
	default:
		return fmt.Errorf("unknown markup kind %q", text)
	}
	return nil
}

// Highlight is one markup annotation, possibly spanning multiple
// quadrilaterals (a highlight crossing a line break produces one rectangle
// per line). Rectangles are in host space. Values are never mutated in
// place; replace by constructing a new value.
type Highlight struct {
	Page  uint        `json:"page"`
	Kind  Kind        `json:"kind"`
	Rects []Rectangle `json:"rects"`
	Color Color       `json:"color"`
	Text  string      `json:"text,omitempty"`
	ID    string      `json:"id"`
}

// NewHighlight builds a Highlight and derives its synthetic id from the
// page and the rounded bounding-box origin.
func NewHighlight(page uint, kind Kind, rects []Rectangle, color Color, text string) Highlight {
	h := Highlight{
		Page:  page,
		Kind:  kind,
		Rects: rects,
		Color: color,
		Text:  text,
	}
	h.ID = HighlightID(page, h.Bounds())
	return h
}

// Bounds returns the union of the highlight's rectangles.
func (h Highlight) Bounds() Rectangle {
	if len(h.Rects) == 0 {
		return Rectangle{}
	}
	b := h.Rects[0]
	for _, r := range h.Rects[1:] {
		b = b.Union(r)
	}
	return b
}

// Note is a point-anchored sticky note. Unlike highlight rectangles, the
// position is kept in native page space (origin bottom-left, Y up) and is
// never transformed; matching against native annotations compares these
// coordinates directly.
type Note struct {
	Page    uint    `json:"page"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	ID      string  `json:"id"`
	Content string  `json:"content,omitempty"`
}

// NewNote builds a Note and derives its synthetic id from the page and the
// rounded native coordinates.
func NewNote(page uint, x, y float64, content string) Note {
	return Note{
		Page:    page,
		X:       x,
		Y:       y,
		ID:      NoteID(page, x, y),
		Content: content,
	}
}

// HighlightID derives a content-based identifier from the page and the
// rounded bounding-box origin. Two annotations sharing an origin collide;
// hosts that need true identity must assign their own ids at creation
// time.
func HighlightID(page uint, bounds Rectangle) string {
	return fmt.Sprintf("%d-%.0f-%.0f", page, bounds.X1, bounds.Y1)
}

// NoteID derives a content-based identifier from the page and the rounded
// native coordinates. Subject to the same collision caveat as HighlightID.
func NoteID(page uint, x, y float64) string {
	return fmt.Sprintf("embedded-%d-%.0f-%.0f", page, x, y)
}
