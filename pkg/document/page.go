package document

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// Page wraps an already-loaded page dictionary together with the geometry
// the annotation layer needs. The text layer is extracted at most once, on
// first use, and only while the document lock is already held.
type Page struct {
	doc    *Document
	dict   types.Dict
	width  float64
	height float64
	index  uint

	text          *TextLayer
	textExtracted bool
}

// NewPage wraps an externally managed page dictionary. Intended for hosts
// that drive page lifecycle themselves; attach the page to a Document via
// NewDocument before using it.
func NewPage(dict types.Dict, width, height float64, index uint) *Page {
	return &Page{
		dict:   dict,
		width:  width,
		height: height,
		index:  index,
	}
}

// Dict returns the native page dictionary.
func (p *Page) Dict() types.Dict {
	return p.dict
}

// Width returns the page width in PDF units.
func (p *Page) Width() float64 {
	return p.width
}

// Height returns the page height in PDF units.
func (p *Page) Height() float64 {
	return p.height
}

// Index returns the zero-based page index.
func (p *Page) Index() uint {
	return p.index
}

// Document returns the owning document, or nil for a detached page.
func (p *Page) Document() *Document {
	return p.doc
}

// TextLayer returns the page's text layer, extracting it on first call.
// Extraction failures degrade to an empty layer; annotation text recovery
// is best effort. Callers must hold the document lock.
func (p *Page) TextLayer() *TextLayer {
	if p.textExtracted {
		return p.text
	}
	p.textExtracted = true

	layer, err := extractTextLayer(p.doc, p.dict)
	if err != nil {
		if p.doc != nil {
			p.doc.Logger().Warn("text layer extraction failed",
				zap.Uint("page", p.index), zap.Error(err))
		}
		layer = NewTextLayer(nil)
	}
	p.text = layer
	return p.text
}

// SetTextLayer installs a previously extracted text layer, e.g. one built
// by the host's own text pipeline. Subsequent TextLayer calls return it
// without touching the content streams.
func (p *Page) SetTextLayer(t *TextLayer) {
	p.text = t
	p.textExtracted = true
}
