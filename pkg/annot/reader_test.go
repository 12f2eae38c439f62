package annot

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

const testPageHeight = 792.0

// newTestPage builds an in-memory document with a single page carrying
// the given annotation array. Direct objects only, no xref.
func newTestPage(annots types.Array, index uint) (*document.Document, *document.Page) {
	dict := types.Dict{}
	if annots != nil {
		dict["Annots"] = annots
	}
	page := document.NewPage(dict, 612, testPageHeight, index)
	doc := document.NewDocument([]*document.Page{page})
	return doc, page
}

// quadPointsArray lays out native quads in QuadPoints order (UL UR LL LR).
func quadPointsArray(quads ...[4]float64) types.Array {
	arr := types.Array{}
	for _, q := range quads {
		x0, y0, x1, y1 := q[0], q[1], q[2], q[3]
		arr = append(arr,
			types.Float(x0), types.Float(y1),
			types.Float(x1), types.Float(y1),
			types.Float(x0), types.Float(y0),
			types.Float(x1), types.Float(y0),
		)
	}
	return arr
}

func TestReadHighlightsEmptyPage(t *testing.T) {
	doc, page := newTestPage(nil, 0)

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	assert.Empty(t, highlights)
}

func TestReadHighlightsInvalidArguments(t *testing.T) {
	doc, page := newTestPage(nil, 0)

	_, err := ReadHighlights(nil, page)
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = ReadHighlights(doc, nil)
	assert.ErrorIs(t, err, ErrInvalidArguments)
}

func TestReadHighlightsSingleQuad(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Type":       types.Name("Annot"),
			"Subtype":    types.Name("Highlight"),
			"Rect":       rectArray(100, 672, 200, 692),
			"QuadPoints": quadPointsArray([4]float64{100, 672, 200, 692}),
			"C":          types.Array{types.Float(1), types.Float(1), types.Float(0)},
			"Contents":   types.StringLiteral("a remark"),
		},
	}
	doc, page := newTestPage(annots, 3)

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)

	h := highlights[0]
	assert.Equal(t, uint(3), h.Page)
	assert.Equal(t, KindHighlight, h.Kind)
	assert.Equal(t, ColorYellow, h.Color)
	assert.Equal(t, "a remark", h.Text)
	require.Len(t, h.Rects, 1)

	// Native (100,672)-(200,692) flips to host (100,100)-(200,120).
	r := h.Rects[0]
	assert.InDelta(t, 100, r.X1, 1e-9)
	assert.InDelta(t, 100, r.Y1, 1e-9)
	assert.InDelta(t, 200, r.X2, 1e-9)
	assert.InDelta(t, 120, r.Y2, 1e-9)

	assert.Equal(t, "3-100-100", h.ID)
}

func TestReadHighlightsMultiQuad(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype": types.Name("StrikeOut"),
			"QuadPoints": quadPointsArray(
				[4]float64{100, 672, 300, 684},
				[4]float64{100, 652, 250, 664},
				[4]float64{100, 632, 180, 644},
			),
			"C": types.Array{types.Float(1), types.Float(0), types.Float(0)},
		},
	}
	doc, page := newTestPage(annots, 0)

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)

	h := highlights[0]
	assert.Equal(t, KindStrikeOut, h.Kind)
	assert.Equal(t, ColorRed, h.Color)
	assert.Len(t, h.Rects, 3)
}

func TestReadHighlightsFiltersAndSkips(t *testing.T) {
	annots := types.Array{
		// Not a markup kind.
		types.Dict{
			"Subtype": types.Name("Link"),
			"Rect":    rectArray(0, 0, 100, 100),
		},
		// Markup without geometry is skipped entirely.
		types.Dict{
			"Subtype": types.Name("Highlight"),
			"C":       types.Array{types.Float(0), types.Float(1), types.Float(0)},
		},
		// Kept.
		types.Dict{
			"Subtype":    types.Name("Underline"),
			"QuadPoints": quadPointsArray([4]float64{50, 700, 150, 712}),
			"C":          types.Array{types.Float(0), types.Float(1), types.Float(0)},
		},
	}
	doc, page := newTestPage(annots, 0)

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.Equal(t, KindUnderline, highlights[0].Kind)
	assert.Equal(t, ColorGreen, highlights[0].Color)
}

func TestReadHighlightsTextFromLayer(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype":    types.Name("Highlight"),
			"QuadPoints": quadPointsArray([4]float64{100, 672, 200, 684}),
			"C":          types.Array{types.Float(1), types.Float(1), types.Float(0)},
		},
	}
	doc, page := newTestPage(annots, 0)
	page.SetTextLayer(document.NewTextLayer([]document.Char{
		{Text: "h", X0: 100, Y0: 672, X1: 106, Y1: 684},
		{Text: "i", X0: 106, Y0: 672, X1: 112, Y1: 684},
		// Outside the highlight region.
		{Text: "x", X0: 400, Y0: 672, X1: 406, Y1: 684},
	}))

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.Equal(t, "hi", highlights[0].Text)
}

func TestReadHighlightsContentsWinOverLayer(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype":    types.Name("Highlight"),
			"QuadPoints": quadPointsArray([4]float64{100, 672, 200, 684}),
			"Contents":   types.StringLiteral("author note"),
		},
	}
	doc, page := newTestPage(annots, 0)
	page.SetTextLayer(document.NewTextLayer([]document.Char{
		{Text: "t", X0: 100, Y0: 672, X1: 106, Y1: 684},
	}))

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.Equal(t, "author note", highlights[0].Text)
}

func TestReadHighlightsIntegerCoordinates(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype": types.Name("Highlight"),
			"QuadPoints": types.Array{
				types.Integer(100), types.Integer(692),
				types.Integer(200), types.Integer(692),
				types.Integer(100), types.Integer(672),
				types.Integer(200), types.Integer(672),
			},
		},
	}
	doc, page := newTestPage(annots, 0)

	highlights, err := ReadHighlights(doc, page)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
}

func TestReadNotes(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype":  types.Name("Text"),
			"Rect":     rectArray(50, 50, 74, 74),
			"Contents": types.StringLiteral("remember this"),
		},
		// Markup annotation is not a note.
		types.Dict{
			"Subtype":    types.Name("Highlight"),
			"QuadPoints": quadPointsArray([4]float64{100, 672, 200, 684}),
		},
		types.Dict{
			"Subtype": types.Name("Text"),
			"Rect":    rectArray(300, 500, 324, 524),
		},
	}
	doc, page := newTestPage(annots, 2)

	notes, err := ReadNotes(doc, page)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Native coordinates, no Y flip.
	assert.Equal(t, 50.0, notes[0].X)
	assert.Equal(t, 50.0, notes[0].Y)
	assert.Equal(t, "remember this", notes[0].Content)
	assert.Equal(t, "embedded-2-50-50", notes[0].ID)

	assert.Equal(t, 300.0, notes[1].X)
	assert.Equal(t, 500.0, notes[1].Y)
	assert.Empty(t, notes[1].Content)
}

func TestReadNotesEmptyPage(t *testing.T) {
	doc, page := newTestPage(nil, 0)

	notes, err := ReadNotes(doc, page)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

// A malformed annotation array is best effort for notes: the entries
// collected before the failure survive.
func TestReadNotesBestEffort(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype":  types.Name("Text"),
			"Rect":     rectArray(50, 50, 74, 74),
			"Contents": types.StringLiteral("first"),
		},
		// Not a dictionary at all; dereferencing fails.
		types.StringLiteral("garbage"),
		types.Dict{
			"Subtype": types.Name("Text"),
			"Rect":    rectArray(60, 60, 84, 84),
		},
	}
	doc, page := newTestPage(annots, 0)

	notes, err := ReadNotes(doc, page)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "first", notes[0].Content)
}

// The same malformed entry is fatal on the highlight path: all partial
// results are discarded.
func TestReadHighlightsFullDiscard(t *testing.T) {
	annots := types.Array{
		types.Dict{
			"Subtype":    types.Name("Highlight"),
			"QuadPoints": quadPointsArray([4]float64{100, 672, 200, 684}),
		},
		types.StringLiteral("garbage"),
	}
	doc, page := newTestPage(annots, 0)

	highlights, err := ReadHighlights(doc, page)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Nil(t, highlights)
}
