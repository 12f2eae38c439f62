package annot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

// annotData holds one markup annotation between the two extraction
// phases: geometry and color are collected while walking the native list,
// text is recovered afterwards.
type annotData struct {
	kind     Kind
	rects    []Rectangle
	color    Color
	contents string
	bounds   nativeRect
}

// ReadHighlights extracts all markup annotations (highlight, underline,
// strikeout) of a page as host-space highlight values, in native iteration
// order. The document lock is held for the full duration. Any native
// failure discards all partial results and reports ErrUnknown.
func ReadHighlights(doc *document.Document, page *document.Page) ([]Highlight, error) {
	if doc == nil || page == nil {
		return nil, ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()
	pageHeight := page.Height()
	pageIndex := page.Index()
	log.Debug("reading annotations",
		zap.Uint("page", pageIndex), zap.Float64("height", pageHeight))

	annots, err := pageAnnots(doc, page)
	if err != nil {
		log.Debug("failed to read annotation array", zap.Error(err))
		return nil, fmt.Errorf("reading annotations on page %d: %w", pageIndex, ErrUnknown)
	}

	// Phase 1: collect geometry and color for every qualifying annotation.
	var collected []annotData
	total := 0
	for _, item := range annots {
		dict, err := doc.DereferenceDict(item)
		if err != nil {
			log.Debug("failed to dereference annotation", zap.Error(err))
			return nil, fmt.Errorf("reading annotations on page %d: %w", pageIndex, ErrUnknown)
		}
		total++

		subtype, err := annotSubtype(doc, dict)
		if err != nil {
			continue
		}
		kind, ok := kindForSubtype(subtype)
		if !ok {
			continue
		}

		quads, err := annotQuads(doc, dict)
		if err != nil {
			log.Debug("failed to read quad points", zap.Error(err))
			return nil, fmt.Errorf("reading annotations on page %d: %w", pageIndex, ErrUnknown)
		}
		if len(quads) == 0 {
			continue
		}

		data := annotData{kind: kind}
		for _, q := range quads {
			data.rects = append(data.rects, quadToRect(q, pageHeight))
			x0, y0, x1, y1 := q.Bounds()
			data.bounds = data.bounds.union(x0, y0, x1, y1)
		}

		components, err := annotColor(doc, dict)
		if err != nil {
			return nil, fmt.Errorf("reading annotations on page %d: %w", pageIndex, ErrUnknown)
		}
		data.color = Classify(components)

		contents, err := annotContents(doc, dict)
		if err != nil {
			return nil, fmt.Errorf("reading annotations on page %d: %w", pageIndex, ErrUnknown)
		}
		data.contents = contents

		collected = append(collected, data)
	}

	// Phase 2: recover text. Contents stored on the annotation win;
	// otherwise select from the text layer using the accumulated native
	// bounding box. The layer is extracted lazily, once per page.
	highlights := make([]Highlight, 0, len(collected))
	for _, data := range collected {
		text := data.contents
		if text == "" {
			text = page.TextLayer().Select(
				data.bounds.X0, data.bounds.Y0, data.bounds.X1, data.bounds.Y1)
		}
		highlights = append(highlights,
			NewHighlight(pageIndex, data.kind, data.rects, data.color, text))
	}

	log.Debug("read annotations",
		zap.Uint("page", pageIndex),
		zap.Int("total", total),
		zap.Int("highlights", len(highlights)))
	return highlights, nil
}

// ReadNotes extracts the page's sticky notes (Text annotations). Unlike
// ReadHighlights this path is best effort: a native failure mid-iteration
// is logged and ends the scan, returning whatever was collected so far.
// Note positions stay in native space and are not Y-flipped.
func ReadNotes(doc *document.Document, page *document.Page) ([]Note, error) {
	if doc == nil || page == nil {
		return nil, ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()
	pageIndex := page.Index()
	notes := []Note{}

	annots, err := pageAnnots(doc, page)
	if err != nil {
		log.Warn("failed to read annotation array for notes",
			zap.Uint("page", pageIndex), zap.Error(err))
		return notes, nil
	}

	for _, item := range annots {
		dict, err := doc.DereferenceDict(item)
		if err != nil {
			log.Warn("failed to dereference annotation while reading notes",
				zap.Uint("page", pageIndex), zap.Error(err))
			break
		}

		subtype, err := annotSubtype(doc, dict)
		if err != nil || subtype != subtypeText {
			continue
		}

		rect, ok, err := annotRect(doc, dict)
		if err != nil {
			log.Warn("failed to read note rect",
				zap.Uint("page", pageIndex), zap.Error(err))
			break
		}
		if !ok {
			continue
		}

		contents, err := annotContents(doc, dict)
		if err != nil {
			log.Warn("failed to read note contents",
				zap.Uint("page", pageIndex), zap.Error(err))
			break
		}

		note := NewNote(pageIndex, rect.X0, rect.Y0, contents)
		notes = append(notes, note)
		log.Debug("found sticky note",
			zap.Uint("page", pageIndex),
			zap.Float64("x", note.X), zap.Float64("y", note.Y))
	}

	log.Debug("read notes", zap.Uint("page", pageIndex), zap.Int("count", len(notes)))
	return notes, nil
}
