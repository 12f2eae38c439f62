package annot

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

// The matcher locates an existing native annotation by value: the host
// holds no native references, so update and delete re-derive the target
// from geometry alone. First match wins; coincident annotations within
// tolerance cannot be told apart.

// findMarkup returns the index within the page's annotation array of the
// markup annotation whose quads match rects positionally within Eps.
func findMarkup(doc *document.Document, page *document.Page, rects []Rectangle) (int, error) {
	annots, err := pageAnnots(doc, page)
	if err != nil {
		return -1, fmt.Errorf("matching annotation on page %d: %w", page.Index(), ErrUnknown)
	}

	pageHeight := page.Height()
	for i, item := range annots {
		dict, err := doc.DereferenceDict(item)
		if err != nil {
			return -1, fmt.Errorf("matching annotation on page %d: %w", page.Index(), ErrUnknown)
		}

		subtype, err := annotSubtype(doc, dict)
		if err != nil {
			continue
		}
		if _, ok := kindForSubtype(subtype); !ok {
			continue
		}

		quads, err := annotQuads(doc, dict)
		if err != nil {
			return -1, fmt.Errorf("matching annotation on page %d: %w", page.Index(), ErrUnknown)
		}
		if len(quads) != len(rects) {
			continue
		}

		matched := true
		for j, q := range quads {
			x0, y0, x1, y1 := q.Bounds()
			if !rectMatchesNative(rects[j], x0, y0, x1, y1, pageHeight, Eps) {
				matched = false
				break
			}
		}
		if matched {
			return i, nil
		}
	}

	return -1, fmt.Errorf("no matching annotation on page %d: %w", page.Index(), ErrUnknown)
}

// findNote returns the index of the Text annotation whose native rect
// origin lies within Eps of (x, y). Coordinates are compared directly in
// native space, consistent with how notes are read.
func findNote(doc *document.Document, page *document.Page, x, y float64) (int, types.Dict, error) {
	annots, err := pageAnnots(doc, page)
	if err != nil {
		return -1, nil, fmt.Errorf("matching note on page %d: %w", page.Index(), ErrUnknown)
	}

	for i, item := range annots {
		dict, err := doc.DereferenceDict(item)
		if err != nil {
			return -1, nil, fmt.Errorf("matching note on page %d: %w", page.Index(), ErrUnknown)
		}

		subtype, err := annotSubtype(doc, dict)
		if err != nil || subtype != subtypeText {
			continue
		}

		rect, ok, err := annotRect(doc, dict)
		if err != nil {
			return -1, nil, fmt.Errorf("matching note on page %d: %w", page.Index(), ErrUnknown)
		}
		if !ok {
			continue
		}

		if abs(rect.X0-x) < Eps && abs(rect.Y0-y) < Eps {
			return i, dict, nil
		}
	}

	return -1, nil, fmt.Errorf("no matching note on page %d: %w", page.Index(), ErrUnknown)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// DeleteHighlight removes the markup annotation whose geometry matches
// rects within tolerance. Reports ErrUnknown when no annotation matches.
func DeleteHighlight(doc *document.Document, page *document.Page, rects []Rectangle) error {
	if doc == nil || page == nil || len(rects) == 0 {
		return ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()
	log.Debug("deleting annotation",
		zap.Uint("page", page.Index()), zap.Int("rects", len(rects)))

	i, err := findMarkup(doc, page, rects)
	if err != nil {
		log.Debug("no matching annotation found", zap.Uint("page", page.Index()))
		return err
	}

	if err := removeAnnot(doc, page, i); err != nil {
		return fmt.Errorf("deleting annotation on page %d: %w", page.Index(), ErrUnknown)
	}

	log.Debug("deleted annotation", zap.Uint("page", page.Index()), zap.Int("index", i))
	return nil
}

// DeleteNote removes the sticky note at the native position (x, y) within
// tolerance. Reports ErrUnknown when no note matches.
func DeleteNote(doc *document.Document, page *document.Page, x, y float64) error {
	if doc == nil || page == nil {
		return ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()

	i, _, err := findNote(doc, page, x, y)
	if err != nil {
		log.Debug("no matching note found",
			zap.Uint("page", page.Index()),
			zap.Float64("x", x), zap.Float64("y", y))
		return err
	}

	if err := removeAnnot(doc, page, i); err != nil {
		return fmt.Errorf("deleting note on page %d: %w", page.Index(), ErrUnknown)
	}

	log.Debug("deleted note",
		zap.Uint("page", page.Index()),
		zap.Float64("x", x), zap.Float64("y", y))
	return nil
}

// UpdateNoteContent replaces the contents of the sticky note at the native
// position (x, y) within tolerance.
func UpdateNoteContent(doc *document.Document, page *document.Page, x, y float64, content string) error {
	if doc == nil || page == nil {
		return ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()

	_, dict, err := findNote(doc, page, x, y)
	if err != nil {
		log.Debug("no matching note found for update",
			zap.Uint("page", page.Index()),
			zap.Float64("x", x), zap.Float64("y", y))
		return err
	}

	dict["Contents"] = types.StringLiteral(content)

	log.Debug("updated note content",
		zap.Uint("page", page.Index()),
		zap.Float64("x", x), zap.Float64("y", y))
	return nil
}
