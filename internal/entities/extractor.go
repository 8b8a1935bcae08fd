// Package entities extracts domain-agnostic pattern-matched tokens
// (emails, phone numbers, URLs, dates) from document text.
package entities

import (
	"context"
	"regexp"

	"golang.org/x/sync/errgroup"
)

// Category identifies one class of structured entity
type Category string

const (
	CategoryEmails Category = "emails"
	CategoryPhones Category = "phone_numbers"
	CategoryURLs   Category = "urls"
	CategoryDates  Category = "dates"
)

// entityPatterns holds the fixed pattern per category. All patterns
// run case-insensitively over the full text.
var entityPatterns = map[Category]*regexp.Regexp{
	CategoryEmails: regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
	CategoryPhones: regexp.MustCompile(`(?i)\b(?:\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	CategoryURLs:   regexp.MustCompile(`(?i)https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+[/\w.-]*\??[/\w.\-=&]*`),
	CategoryDates:  regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
}

// Entities holds the deduplicated matches per category. Every category
// is always present; a category without matches is an empty slice, not
// nil. Order within a category is not guaranteed.
type Entities struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
	URLs         []string `json:"urls"`
	Dates        []string `json:"dates"`
}

// Extractor runs the fixed entity patterns over a text blob
type Extractor struct{}

// NewExtractor creates a new structured-entity extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract collects all non-overlapping matches for every category.
// The categories are mutually independent, so they run concurrently.
func (e *Extractor) Extract(ctx context.Context, text string) Entities {
	var emails, phones, urls, dates []string

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { emails = matchCategory(CategoryEmails, text); return nil })
	g.Go(func() error { phones = matchCategory(CategoryPhones, text); return nil })
	g.Go(func() error { urls = matchCategory(CategoryURLs, text); return nil })
	g.Go(func() error { dates = matchCategory(CategoryDates, text); return nil })
	_ = g.Wait()

	return Entities{
		Emails:       emails,
		PhoneNumbers: phones,
		URLs:         urls,
		Dates:        dates,
	}
}

// matchCategory applies one category's pattern and deduplicates the
// matches. Deduplication goes through a set, which discards match
// order.
func matchCategory(category Category, text string) []string {
	matches := entityPatterns[category].FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		seen[m] = struct{}{}
	}

	result := make([]string, 0, len(seen))
	for m := range seen {
		result = append(result, m)
	}
	return result
}
