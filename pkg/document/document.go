package document

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"
)

// Document wraps a loaded PDF and the exclusive lock guarding all native
// annotation access. The underlying pdfcpu context is not safe for
// concurrent use, so every operation that touches native objects must hold
// the lock for its full duration.
type Document struct {
	mu     sync.Mutex
	ctx    *model.Context
	logger *zap.Logger
	pages  []*Page
}

type config struct {
	logger   *zap.Logger
	password string
}

// Option configures a Document at open time.
type Option func(*config)

// WithLogger sets the logger used by the document and all annotation
// operations against it. The default is zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPassword supplies the user/owner password for encrypted files.
func WithPassword(password string) Option {
	return func(c *config) {
		c.password = password
	}
}

// Open opens a PDF file and returns a Document.
func Open(filepath string, opts ...Option) (*Document, error) {
	c := applyOptions(opts)

	var ctx *model.Context
	var err error
	if c.password == "" {
		ctx, err = api.ReadContextFile(filepath)
	} else {
		var f *os.File
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		ctx, err = api.ReadContext(f, passwordConfiguration(c.password))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	return FromContext(ctx, opts...)
}

// OpenBytes opens a PDF held in memory.
func OpenBytes(b []byte, opts ...Option) (*Document, error) {
	c := applyOptions(opts)

	ctx, err := api.ReadContext(bytes.NewReader(b), passwordConfiguration(c.password))
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	return FromContext(ctx, opts...)
}

// FromContext wraps an already-parsed pdfcpu context.
func FromContext(ctx *model.Context, opts ...Option) (*Document, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	c := applyOptions(opts)
	doc := &Document{
		ctx:    ctx,
		logger: c.logger,
	}

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// NewDocument wraps externally managed pages with no backing pdfcpu
// context. Hosts that own page lifecycle themselves, and tests, build
// documents this way; dereferencing then only resolves direct objects.
func NewDocument(pages []*Page, opts ...Option) *Document {
	c := applyOptions(opts)
	doc := &Document{
		logger: c.logger,
		pages:  pages,
	}
	for _, p := range pages {
		p.doc = doc
	}
	return doc
}

func applyOptions(opts []Option) *config {
	c := &config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func passwordConfiguration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	return conf
}

// initializePages builds the page wrappers for the context.
func (d *Document) initializePages() error {
	pageCount := d.ctx.PageCount
	d.pages = make([]*Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		pageDict, _, attrs, err := d.ctx.PageDict(i, false)
		if err != nil {
			return fmt.Errorf("failed to get page dict %d: %w", i, err)
		}

		// Default US Letter size when no MediaBox is inherited.
		width, height := 612.0, 792.0
		if attrs != nil && attrs.MediaBox != nil {
			width = attrs.MediaBox.Width()
			height = attrs.MediaBox.Height()
		}

		d.pages[i-1] = &Page{
			doc:    d,
			dict:   pageDict,
			width:  width,
			height: height,
			index:  uint(i - 1),
		}
	}

	return nil
}

// Lock acquires the document-wide critical section.
func (d *Document) Lock() {
	d.mu.Lock()
}

// Unlock releases the document-wide critical section.
func (d *Document) Unlock() {
	d.mu.Unlock()
}

// Logger returns the document's logger. Never nil.
func (d *Document) Logger() *zap.Logger {
	return d.logger
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Page returns a page by zero-based index.
func (d *Document) Page(index int) (*Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// Pages returns all pages in the document.
func (d *Document) Pages() []*Page {
	return d.pages
}

// SaveAs writes the in-memory context, including annotation changes, to a
// file. Documents without a backing context cannot be saved.
func (d *Document) SaveAs(filepath string) error {
	if d.ctx == nil {
		return fmt.Errorf("document has no backing context")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return api.WriteContextFile(d.ctx, filepath)
}

// Close releases resources associated with the document.
func (d *Document) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}

// Dereference resolves an indirect reference. With no backing context the
// object is returned as-is.
func (d *Document) Dereference(obj types.Object) (types.Object, error) {
	if d.ctx == nil {
		return obj, nil
	}
	return d.ctx.Dereference(obj)
}

// DereferenceDict resolves an object expected to be a dictionary.
func (d *Document) DereferenceDict(obj types.Object) (types.Dict, error) {
	if d.ctx == nil {
		dict, ok := obj.(types.Dict)
		if !ok {
			return nil, fmt.Errorf("expected dict, got %T", obj)
		}
		return dict, nil
	}
	return d.ctx.DereferenceDict(obj)
}

// DereferenceArray resolves an object expected to be an array.
func (d *Document) DereferenceArray(obj types.Object) (types.Array, error) {
	if d.ctx == nil {
		arr, ok := obj.(types.Array)
		if !ok {
			return nil, fmt.Errorf("expected array, got %T", obj)
		}
		return arr, nil
	}
	return d.ctx.DereferenceArray(obj)
}
