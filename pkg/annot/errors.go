// Package annot reads, matches and writes PDF markup annotations
// (highlight, underline, strikeout) and sticky notes, reconciling them
// between a host's rectangle-based model and the native annotation
// dictionaries of the underlying document.
package annot

import "errors"

// The error taxonomy mirrors the host contract: argument validation fails
// fast with ErrInvalidArguments before any lock is taken; every native
// failure, including "no matching annotation", surfaces as ErrUnknown.
// Callers cannot distinguish a missing match from a genuine library fault.
var (
	ErrInvalidArguments = errors.New("pdfannot: invalid arguments")
	ErrUnknown          = errors.New("pdfannot: unknown error")
)
