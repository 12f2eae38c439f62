package annot

import (
	"go.uber.org/zap"

	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

// ExportHighlights converts highlight values targeting the page back to
// native markup annotations and commits them. Highlights for other pages
// and highlights without rectangles are skipped, and a failure committing
// one annotation is logged and does not abort the batch. Returns the
// number of annotations actually committed; on partial failure it is less
// than the input size.
func ExportHighlights(doc *document.Document, page *document.Page, highlights []Highlight) (int, error) {
	if doc == nil || page == nil || highlights == nil {
		return 0, ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()
	pageHeight := page.Height()
	pageIndex := page.Index()
	log.Debug("exporting highlights",
		zap.Uint("page", pageIndex),
		zap.Int("count", len(highlights)),
		zap.Float64("height", pageHeight))

	exported := 0
	for _, h := range highlights {
		if h.Page != pageIndex {
			continue
		}
		if len(h.Rects) == 0 {
			log.Debug("highlight has no rectangles, skipping", zap.String("id", h.ID))
			continue
		}

		quads := make([]Quad, len(h.Rects))
		for i, r := range h.Rects {
			quads[i] = rectToQuad(r, pageHeight)
		}

		dict := newMarkupDict(h.Kind, quads, h.Color, h.Text)
		if err := appendAnnot(doc, page, dict); err != nil {
			log.Warn("failed to commit highlight",
				zap.String("id", h.ID), zap.Error(err))
			continue
		}

		exported++
		log.Debug("exported highlight",
			zap.String("id", h.ID),
			zap.Stringer("kind", h.Kind),
			zap.Int("quads", len(quads)))
	}

	log.Info("exported highlights",
		zap.Uint("page", pageIndex), zap.Int("exported", exported))
	return exported, nil
}

// ExportNotes converts note values targeting the page to native Text
// annotations anchored at their stored native coordinates and commits
// them. Per-note failures are logged and skipped.
func ExportNotes(doc *document.Document, page *document.Page, notes []Note) (int, error) {
	if doc == nil || page == nil || notes == nil {
		return 0, ErrInvalidArguments
	}

	doc.Lock()
	defer doc.Unlock()

	log := doc.Logger()
	pageIndex := page.Index()

	exported := 0
	for _, n := range notes {
		if n.Page != pageIndex {
			continue
		}

		dict := newNoteDict(n.X, n.Y, n.Content)
		if err := appendAnnot(doc, page, dict); err != nil {
			log.Warn("failed to commit note",
				zap.String("id", n.ID), zap.Error(err))
			continue
		}

		exported++
		log.Debug("exported note",
			zap.Float64("x", n.X), zap.Float64("y", n.Y))
	}

	log.Info("exported notes",
		zap.Uint("page", pageIndex), zap.Int("exported", exported))
	return exported, nil
}
