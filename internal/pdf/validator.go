package pdf

import (
	"fmt"
	"strings"
)

// Validator handles upload validation before any extraction work
type Validator struct {
	maxUploadSize int64
}

// NewValidator creates a new upload validator with the specified constraints
func NewValidator(maxUploadSize int64) *Validator {
	return &Validator{
		maxUploadSize: maxUploadSize,
	}
}

// ValidateName checks that the uploaded filename designates a PDF
func (v *Validator) ValidateName(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return fmt.Errorf("file must be a PDF: %s", filename)
	}

	return nil
}

// ValidateSize checks the upload against the configured size ceiling
func (v *Validator) ValidateSize(size int64) error {
	if size == 0 {
		return fmt.Errorf("file is empty")
	}

	if size > v.maxUploadSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", size, v.maxUploadSize)
	}

	return nil
}

// ValidateUpload performs full validation of an uploaded file
func (v *Validator) ValidateUpload(filename string, size int64) error {
	if err := v.ValidateName(filename); err != nil {
		return err
	}
	return v.ValidateSize(size)
}

// MaxUploadSize returns the configured upload size ceiling
func (v *Validator) MaxUploadSize() int64 {
	return v.maxUploadSize
}
