package pdf

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service handles PDF processing by orchestrating the document
// extractor, the upload validator and the table strategies
type Service struct {
	extractor  *Extractor
	validator  *Validator
	strategies []TableStrategy
}

// NewService creates a new PDF service with all components
func NewService(maxUploadSize int64) *Service {
	return &Service{
		extractor: NewExtractor(),
		validator: NewValidator(maxUploadSize),
		strategies: []TableStrategy{
			NewContentStreamStrategy(),
			NewTextGridStrategy(),
		},
	}
}

// ExtractDocument extracts text, page geometry and metadata from raw
// PDF bytes. Failures degrade into Document.Error, never an error.
func (s *Service) ExtractDocument(data []byte) *Document {
	return s.extractor.Extract(data)
}

// ExtractText extracts the concatenated text of all pages
func (s *Service) ExtractText(data []byte) (string, error) {
	return s.extractor.ExtractText(data)
}

// ValidateName checks that the uploaded filename designates a PDF
func (s *Service) ValidateName(filename string) error {
	return s.validator.ValidateName(filename)
}

// ValidateUpload performs full validation of an uploaded file
func (s *Service) ValidateUpload(filename string, size int64) error {
	return s.validator.ValidateUpload(filename, size)
}

// MaxUploadSize returns the configured upload size ceiling
func (s *Service) MaxUploadSize() int64 {
	return s.validator.MaxUploadSize()
}

// ExtractAllTables runs every table strategy against the document.
// Strategies are independent, so they run concurrently; one failing
// strategy degrades to an empty set instead of failing the request.
func (s *Service) ExtractAllTables(ctx context.Context, data []byte) map[string]TableSet {
	results := make([]TableSet, len(s.strategies))

	g, _ := errgroup.WithContext(ctx)
	for i, strategy := range s.strategies {
		g.Go(func() error {
			tables, err := strategy.ExtractTables(data)
			if err != nil {
				results[i] = TableSet{Tables: []Table{}, Error: err.Error()}
				return nil
			}
			results[i] = TableSet{Tables: tables, TableCount: len(tables)}
			return nil
		})
	}
	_ = g.Wait()

	sets := make(map[string]TableSet, len(s.strategies))
	for i, strategy := range s.strategies {
		sets[strategy.Name()] = results[i]
	}
	return sets
}
