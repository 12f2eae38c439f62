// Package pdfannot reads and writes markup annotations (highlights,
// underlines, strikeouts) and sticky notes on PDF pages, reconciling a
// host application's rectangle-based model with the document's native
// annotation objects.
package pdfannot

import (
	"github.com/pyhub-apps/pdfannot-golang/pkg/annot"
	"github.com/pyhub-apps/pdfannot-golang/pkg/document"
)

// Re-export types from the annot and document packages for the public API.
type (
	Document  = document.Document
	Page      = document.Page
	TextLayer = document.TextLayer
	Char      = document.Char
	Highlight = annot.Highlight
	Note      = annot.Note
	Rectangle = annot.Rectangle
	Quad      = annot.Quad
	Color     = annot.Color
	Kind      = annot.Kind
)

const (
	ColorYellow = annot.ColorYellow
	ColorGreen  = annot.ColorGreen
	ColorBlue   = annot.ColorBlue
	ColorRed    = annot.ColorRed

	KindHighlight = annot.KindHighlight
	KindUnderline = annot.KindUnderline
	KindStrikeOut = annot.KindStrikeOut
)

var (
	ErrInvalidArguments = annot.ErrInvalidArguments
	ErrUnknown          = annot.ErrUnknown
)

// Re-export constructors and options.
var (
	WithLogger   = document.WithLogger
	WithPassword = document.WithPassword

	NewRectangle = annot.NewRectangle
	NewHighlight = annot.NewHighlight
	NewNote      = annot.NewNote
	Classify     = annot.Classify
)

// Re-export the annotation operations.
var (
	ReadHighlights    = annot.ReadHighlights
	ReadNotes         = annot.ReadNotes
	ExportHighlights  = annot.ExportHighlights
	ExportNotes       = annot.ExportNotes
	DeleteHighlight   = annot.DeleteHighlight
	DeleteNote        = annot.DeleteNote
	UpdateNoteContent = annot.UpdateNoteContent
)

// Open opens a PDF file and returns a Document.
func Open(filepath string, opts ...document.Option) (*Document, error) {
	return document.Open(filepath, opts...)
}

// OpenBytes opens a PDF held in memory.
func OpenBytes(b []byte, opts ...document.Option) (*Document, error) {
	return document.OpenBytes(b, opts...)
}
