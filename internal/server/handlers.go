package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/docuconv/pdf2json/internal/config"
	"github.com/docuconv/pdf2json/internal/entities"
	"github.com/docuconv/pdf2json/internal/pdf"
	"github.com/docuconv/pdf2json/internal/po"
)

// Generic uploads carry no purchase-order size rule but still get an
// explicit ceiling so a single request cannot exhaust the process.
const maxGenericUploadSize = 100 * 1024 * 1024 // 100MB

// Handler bundles the extraction services behind the HTTP endpoints
type Handler struct {
	cfg             *config.Config
	pdfService      *pdf.Service
	entityExtractor *entities.Extractor
}

// NewHandler creates the endpoint handler set
func NewHandler(cfg *config.Config, pdfService *pdf.Service, entityExtractor *entities.Extractor) *Handler {
	return &Handler{
		cfg:             cfg,
		pdfService:      pdfService,
		entityExtractor: entityExtractor,
	}
}

// conversionResponse is the envelope returned by the convert endpoints
type conversionResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Pages   int    `json:"pages"`
}

// Root serves the liveness message
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "PDF to JSON Conversion API running",
	})
}

// errUploadTooLarge marks a request body that blew past the read bound
var errUploadTooLarge = errors.New("upload exceeds the request size limit")

// readUpload pulls the multipart "file" part into memory, enforcing
// the given request size bound
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, bound int64) ([]byte, string, int64, error) {
	r.Body = http.MaxBytesReader(w, r.Body, bound)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", 0, errUploadTooLarge
		}
		return nil, "", 0, fmt.Errorf("invalid file upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, "", 0, errUploadTooLarge
		}
		return nil, "", 0, fmt.Errorf("failed to read upload: %w", err)
	}

	return data, header.Filename, header.Size, nil
}

// rejectUpload maps an upload read failure to its client-facing message
func (h *Handler) rejectUpload(w http.ResponseWriter, err error) {
	if errors.Is(err, errUploadTooLarge) {
		h.clientError(w, "File too large")
		return
	}
	h.clientError(w, err.Error())
}

// ConvertPDF converts an uploaded PDF into text, page geometry and
// metadata
func (h *Handler) ConvertPDF(w http.ResponseWriter, r *http.Request) {
	data, filename, _, err := h.readUpload(w, r, maxGenericUploadSize)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	if err := h.pdfService.ValidateName(filename); err != nil {
		h.clientError(w, "File must be a PDF")
		return
	}

	doc := h.pdfService.ExtractDocument(data)

	writeJSON(w, http.StatusOK, conversionResponse{
		Success: true,
		Data:    doc,
		Message: "PDF converted successfully",
		Pages:   len(doc.Pages),
	})
}

// ConvertPurchaseOrder converts an uploaded purchase-order PDF into a
// structured record
func (h *Handler) ConvertPurchaseOrder(w http.ResponseWriter, r *http.Request) {
	// Allow some slack over the document cap for multipart framing
	data, filename, size, err := h.readUpload(w, r, h.pdfService.MaxUploadSize()+1024*1024)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	if err := h.pdfService.ValidateName(filename); err != nil {
		h.clientError(w, "File must be a PDF")
		return
	}
	if err := h.pdfService.ValidateUpload(filename, size); err != nil {
		if size == 0 {
			h.clientError(w, "File is empty")
			return
		}
		h.clientError(w, "File too large")
		return
	}

	text, err := h.pdfService.ExtractText(data)
	if err != nil {
		h.serverError(w, "Error processing PDF", err)
		return
	}

	record := po.Parse(text, filename)

	writeJSON(w, http.StatusOK, conversionResponse{
		Success: true,
		Data:    record,
		Message: "Purchase Order PDF converted successfully",
		Pages:   record.Metadata.TotalPages,
	})
}

// advancedResult merges the extracted document with the structured
// entities found in its text
type advancedResult struct {
	*pdf.Document
	StructuredData     entities.Entities `json:"structured_data"`
	AdvancedProcessing entityCounts      `json:"advanced_processing"`
}

type entityCounts struct {
	EmailCount int `json:"email_count"`
	PhoneCount int `json:"phone_count"`
	URLCount   int `json:"url_count"`
}

// ConvertAdvanced converts an uploaded PDF and additionally extracts
// structured entities from its text
func (h *Handler) ConvertAdvanced(w http.ResponseWriter, r *http.Request) {
	data, filename, _, err := h.readUpload(w, r, maxGenericUploadSize)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	if err := h.pdfService.ValidateName(filename); err != nil {
		h.clientError(w, "File must be a PDF")
		return
	}

	doc := h.pdfService.ExtractDocument(data)
	found := h.entityExtractor.Extract(r.Context(), doc.Text)

	writeJSON(w, http.StatusOK, advancedResult{
		Document:       doc,
		StructuredData: found,
		AdvancedProcessing: entityCounts{
			EmailCount: len(found.Emails),
			PhoneCount: len(found.PhoneNumbers),
			URLCount:   len(found.URLs),
		},
	})
}

// tablesResult reports the grids found by each table strategy
type tablesResult struct {
	Success    bool                    `json:"success"`
	Strategies map[string]pdf.TableSet `json:"strategies"`
	TableCount int                     `json:"table_count"`
}

// ConvertTables runs every table-extraction strategy over the upload
func (h *Handler) ConvertTables(w http.ResponseWriter, r *http.Request) {
	data, filename, _, err := h.readUpload(w, r, maxGenericUploadSize)
	if err != nil {
		h.rejectUpload(w, err)
		return
	}

	if err := h.pdfService.ValidateName(filename); err != nil {
		h.clientError(w, "File must be a PDF")
		return
	}

	sets := h.pdfService.ExtractAllTables(r.Context(), data)

	total := 0
	for _, set := range sets {
		total += set.TableCount
	}

	writeJSON(w, http.StatusOK, tablesResult{
		Success:    true,
		Strategies: sets,
		TableCount: total,
	})
}
