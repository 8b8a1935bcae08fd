package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const (
	// Fallback page geometry for pages without a resolvable MediaBox
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Extractor converts raw PDF bytes into a Document. Page text and
// geometry come from ledongthuc/pdf, document properties from pdfcpu,
// so a failure in one library still leaves the other's results intact.
type Extractor struct {
	maxTextSize int
}

// NewExtractor creates a new document extractor
func NewExtractor() *Extractor {
	return &Extractor{
		maxTextSize: 10 * 1024 * 1024, // 10MB text limit
	}
}

// Extract builds a Document from raw PDF bytes. It never returns an
// error: any internal failure is recorded in Document.Error and the
// partial result accumulated up to that point is kept.
func (e *Extractor) Extract(data []byte) *Document {
	doc := &Document{
		Pages: []Page{},
	}

	if err := e.readMetadata(data, doc); err != nil {
		doc.Error = err.Error()
	}

	if err := e.readPages(data, doc); err != nil {
		doc.Error = err.Error()
	}

	return doc
}

// ExtractText returns the concatenated text of all pages. Unlike
// Extract, a failure here is a hard error for the caller to surface.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	doc := &Document{}
	if err := e.readPages(data, doc); err != nil {
		return "", fmt.Errorf("failed to extract text from PDF: %w", err)
	}
	return doc.Text, nil
}

// readMetadata extracts document info and the page count using pdfcpu
func (e *Extractor) readMetadata(data []byte, doc *Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metadata extraction failed: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return fmt.Errorf("failed to determine page count: %w", err)
	}

	doc.Metadata.TotalPages = ctx.PageCount
	doc.TotalPages = ctx.PageCount

	if ctx.Info == nil {
		return nil
	}

	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || d == nil {
		// Info dictionary is optional, missing metadata is not a failure
		return nil
	}

	if title := d.StringEntry("Title"); title != nil {
		doc.Metadata.Title = strings.TrimSpace(*title)
	}
	if author := d.StringEntry("Author"); author != nil {
		doc.Metadata.Author = strings.TrimSpace(*author)
	}

	return nil
}

// readPages extracts per-page text and dimensions using ledongthuc/pdf
func (e *Extractor) readPages(data []byte, doc *Document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text extraction failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}

	var builder strings.Builder
	totalLength := 0

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep the page with empty text, same as a page that
			// simply has no extractable content
			text = ""
		}

		width, height := pageSize(page)
		doc.Pages = append(doc.Pages, Page{
			PageNumber: pageNum,
			Text:       text,
			Width:      width,
			Height:     height,
		})

		if totalLength+len(text) <= e.maxTextSize {
			builder.WriteString(text)
			builder.WriteString("\n\n")
			totalLength += len(text) + 2
		}
	}

	doc.Text = strings.TrimSpace(builder.String())
	if doc.TotalPages == 0 {
		doc.TotalPages = len(doc.Pages)
	}

	return nil
}

// pageSize resolves the page dimensions from its MediaBox. The MediaBox
// is an inheritable attribute, so absent an entry on the page itself the
// page tree is walked upwards.
func pageSize(p pdf.Page) (float64, float64) {
	box := p.V.Key("MediaBox")
	node := p.V
	for box.IsNull() && !node.IsNull() {
		node = node.Key("Parent")
		box = node.Key("MediaBox")
	}

	if box.IsNull() || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}

	width := box.Index(2).Float64() - box.Index(0).Float64()
	height := box.Index(3).Float64() - box.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}

	return width, height
}
