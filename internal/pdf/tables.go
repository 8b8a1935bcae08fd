package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// TableStrategy converts raw PDF bytes into a list of row/column grids.
// Strategies are independent alternatives, results from one are never
// reconciled against another.
type TableStrategy interface {
	Name() string
	ExtractTables(data []byte) ([]Table, error)
}

// writeTempPDF writes the upload to a uniquely named temp file so that
// concurrent requests never share a path. The cleanup func removes it.
func writeTempPDF(data []byte) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("pdf2json-%s.pdf", uuid.NewString()))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("failed to write temp PDF: %w", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// ContentStreamStrategy detects tables by parsing decoded page content
// streams via pdfcpu. Cell boundaries are inferred from large kerning
// jumps inside TJ arrays, row boundaries from text-positioning
// operators.
type ContentStreamStrategy struct{}

// NewContentStreamStrategy creates the pdfcpu-backed table strategy
func NewContentStreamStrategy() *ContentStreamStrategy {
	return &ContentStreamStrategy{}
}

// Name returns the strategy identifier used in API responses
func (s *ContentStreamStrategy) Name() string {
	return "content_stream"
}

var contentPageNumRe = regexp.MustCompile(`(\d+)\.txt$`)

// ExtractTables extracts tables from all pages of the document
func (s *ContentStreamStrategy) ExtractTables(data []byte) ([]Table, error) {
	path, cleanup, err := writeTempPDF(data)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	outDir, err := os.MkdirTemp("", "pdf2json-content-")
	if err != nil {
		return nil, fmt.Errorf("failed to create content dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract page content: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read content dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".txt" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tables := []Table{}
	for i, name := range names {
		content, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			continue
		}

		pageNum := i + 1
		if m := contentPageNumRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				pageNum = n
			}
		}

		rows := parseContentRows(content)
		tables = append(tables, gridsFromRows(rows, pageNum)...)
	}

	return tables, nil
}

// TextGridStrategy detects tables by clustering positioned text runs
// from ledongthuc/pdf into rows and splitting rows into cells at
// horizontal gaps.
type TextGridStrategy struct {
	cellGap float64
	wordGap float64
}

// NewTextGridStrategy creates the text-position-based table strategy
func NewTextGridStrategy() *TextGridStrategy {
	return &TextGridStrategy{
		cellGap: 12.0, // Horizontal gap starting a new cell
		wordGap: 1.5,  // Horizontal gap starting a new word within a cell
	}
}

// Name returns the strategy identifier used in API responses
func (s *TextGridStrategy) Name() string {
	return "text_grid"
}

// ExtractTables extracts tables from all pages of the document
func (s *TextGridStrategy) ExtractTables(data []byte) (result []Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text grid extraction failed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	result = []Table{}
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pdfRows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		rows := make([][]string, 0, len(pdfRows))
		for _, row := range pdfRows {
			rows = append(rows, s.splitCells(row.Content))
		}

		result = append(result, gridsFromRows(rows, pageNum)...)
	}

	return result, nil
}

// splitCells turns one positioned text row into cells, breaking at
// horizontal gaps wider than cellGap
func (s *TextGridStrategy) splitCells(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	cells := []string{}
	var cell bytes.Buffer
	prevEnd := sorted[0].X

	for i, t := range sorted {
		gap := t.X - prevEnd
		switch {
		case i > 0 && gap > s.cellGap:
			cells = append(cells, cell.String())
			cell.Reset()
		case i > 0 && gap > s.wordGap:
			cell.WriteByte(' ')
		}
		cell.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	cells = append(cells, cell.String())

	return cells
}

// gridsFromRows groups consecutive multi-cell rows into tables. A run
// of at least two rows with two or more cells each counts as a table.
func gridsFromRows(rows [][]string, pageNum int) []Table {
	tables := []Table{}
	var current [][]string

	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, Table{Page: pageNum, Rows: current})
		}
		current = nil
	}

	for _, row := range rows {
		if len(row) >= 2 {
			current = append(current, row)
		} else {
			flush()
		}
	}
	flush()

	return tables
}
