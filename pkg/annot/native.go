package annot

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

// Native annotation subtypes handled by this package.
const (
	subtypeHighlight = types.Name("Highlight")
	subtypeUnderline = types.Name("Underline")
	subtypeStrikeOut = types.Name("StrikeOut")
	subtypeText      = types.Name("Text")
)

func kindForSubtype(name types.Name) (Kind, bool) {
	switch name {
	case subtypeHighlight:
		return KindHighlight, true
	case subtypeUnderline:
		return KindUnderline, true
	case subtypeStrikeOut:
		return KindStrikeOut, true
	default:
		return 0, false
	}
}

func subtypeForKind(k Kind) types.Name {
	switch k {
	case KindUnderline:
		return subtypeUnderline
	case KindStrikeOut:
		return subtypeStrikeOut
	default:
		return subtypeHighlight
	}
}

// pageAnnots returns the page's annotation array, or nil when the page has
// none.
func pageAnnots(doc *document.Document, page *document.Page) (types.Array, error) {
	obj := page.Dict()["Annots"]
	if obj == nil {
		return nil, nil
	}
	return doc.DereferenceArray(obj)
}

// setPageAnnots replaces the page's annotation array. The array is stored
// as a direct object; mutation stays in memory until the host persists the
// document.
func setPageAnnots(page *document.Page, annots types.Array) {
	page.Dict()["Annots"] = annots
}

// appendAnnot commits a new annotation dictionary to the page.
func appendAnnot(doc *document.Document, page *document.Page, dict types.Dict) error {
	annots, err := pageAnnots(doc, page)
	if err != nil {
		return err
	}
	setPageAnnots(page, append(annots, dict))
	return nil
}

// removeAnnot deletes the annotation at index i of the page's array.
func removeAnnot(doc *document.Document, page *document.Page, i int) error {
	annots, err := pageAnnots(doc, page)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(annots) {
		return fmt.Errorf("annotation index %d out of range", i)
	}
	updated := make(types.Array, 0, len(annots)-1)
	updated = append(updated, annots[:i]...)
	updated = append(updated, annots[i+1:]...)
	setPageAnnots(page, updated)
	return nil
}

// annotSubtype reads the annotation's subtype name.
func annotSubtype(doc *document.Document, dict types.Dict) (types.Name, error) {
	obj, err := doc.Dereference(dict["Subtype"])
	if err != nil {
		return "", err
	}
	name, ok := obj.(types.Name)
	if !ok {
		return "", fmt.Errorf("annotation has no subtype")
	}
	return name, nil
}

// floatValue unwraps a numeric object.
func floatValue(obj types.Object) (float64, bool) {
	switch v := obj.(type) {
	case types.Float:
		return float64(v), true
	case types.Integer:
		return float64(v), true
	default:
		return 0, false
	}
}

// numbers dereferences an array of numeric objects.
func numbers(doc *document.Document, arr types.Array) ([]float64, error) {
	out := make([]float64, 0, len(arr))
	for _, item := range arr {
		obj, err := doc.Dereference(item)
		if err != nil {
			return nil, err
		}
		v, ok := floatValue(obj)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", obj)
		}
		out = append(out, v)
	}
	return out, nil
}

// annotQuads reads the annotation's QuadPoints as native quadrilaterals.
// Returns nil for annotations without quad geometry.
func annotQuads(doc *document.Document, dict types.Dict) ([]Quad, error) {
	obj := dict["QuadPoints"]
	if obj == nil {
		return nil, nil
	}
	arr, err := doc.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}
	coords, err := numbers(doc, arr)
	if err != nil {
		return nil, err
	}

	quads := make([]Quad, 0, len(coords)/8)
	for i := 0; i+8 <= len(coords); i += 8 {
		quads = append(quads, Quad{
			UL: Point{X: coords[i], Y: coords[i+1]},
			UR: Point{X: coords[i+2], Y: coords[i+3]},
			LL: Point{X: coords[i+4], Y: coords[i+5]},
			LR: Point{X: coords[i+6], Y: coords[i+7]},
		})
	}
	return quads, nil
}

// annotColor reads the annotation's color components ("C"), 0-4 channels.
func annotColor(doc *document.Document, dict types.Dict) ([]float64, error) {
	obj := dict["C"]
	if obj == nil {
		return nil, nil
	}
	arr, err := doc.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}
	return numbers(doc, arr)
}

// annotContents reads the annotation's textual contents, "" when absent.
func annotContents(doc *document.Document, dict types.Dict) (string, error) {
	obj, err := doc.Dereference(dict["Contents"])
	if err != nil {
		return "", err
	}
	switch v := obj.(type) {
	case types.StringLiteral:
		return string(v), nil
	case types.HexLiteral:
		return decodeHexString(string(v)), nil
	default:
		return "", nil
	}
}

func decodeHexString(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	if len(s)%2 == 1 {
		s += "0"
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return ""
	}
	return string(b)
}

// annotRect reads the annotation's normalized Rect in native space.
func annotRect(doc *document.Document, dict types.Dict) (nativeRect, bool, error) {
	obj := dict["Rect"]
	if obj == nil {
		return nativeRect{}, false, nil
	}
	arr, err := doc.DereferenceArray(obj)
	if err != nil {
		return nativeRect{}, false, err
	}
	coords, err := numbers(doc, arr)
	if err != nil {
		return nativeRect{}, false, err
	}
	if len(coords) < 4 {
		return nativeRect{}, false, nil
	}

	x0, y0, x1, y1 := coords[0], coords[1], coords[2], coords[3]
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return nativeRect{X0: x0, Y0: y0, X1: x1, Y1: y1}, true, nil
}

func rectArray(x0, y0, x1, y1 float64) types.Array {
	return types.Array{types.Float(x0), types.Float(y0), types.Float(x1), types.Float(y1)}
}

// newMarkupDict builds a native markup annotation dictionary: quad
// geometry, canonical color, optional contents. The appearance stream is
// left absent so conforming readers regenerate it from the geometry.
func newMarkupDict(kind Kind, quads []Quad, color Color, contents string) types.Dict {
	coords := make(types.Array, 0, len(quads)*8)
	var bounds nativeRect
	for _, q := range quads {
		coords = append(coords,
			types.Float(q.UL.X), types.Float(q.UL.Y),
			types.Float(q.UR.X), types.Float(q.UR.Y),
			types.Float(q.LL.X), types.Float(q.LL.Y),
			types.Float(q.LR.X), types.Float(q.LR.Y),
		)
		x0, y0, x1, y1 := q.Bounds()
		bounds = bounds.union(x0, y0, x1, y1)
	}

	rgb := color.RGB()
	dict := types.Dict{
		"Type":       types.Name("Annot"),
		"Subtype":    subtypeForKind(kind),
		"Rect":       rectArray(bounds.X0, bounds.Y0, bounds.X1, bounds.Y1),
		"QuadPoints": coords,
		"C":          types.Array{types.Float(rgb.R), types.Float(rgb.G), types.Float(rgb.B)},
	}
	if contents != "" {
		dict["Contents"] = types.StringLiteral(contents)
	}
	return dict
}

// noteAnchorSize is the fixed edge length of the sticky note icon rect.
const noteAnchorSize = 24.0

// newNoteDict builds a native Text annotation dictionary anchored at the
// note's native coordinates.
func newNoteDict(x, y float64, contents string) types.Dict {
	dict := types.Dict{
		"Type":    types.Name("Annot"),
		"Subtype": subtypeText,
		"Rect":    rectArray(x, y, x+noteAnchorSize, y+noteAnchorSize),
	}
	if contents != "" {
		dict["Contents"] = types.StringLiteral(contents)
	}
	return dict
}
