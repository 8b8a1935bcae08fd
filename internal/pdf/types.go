package pdf

// Metadata represents reader-level document properties
type Metadata struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	TotalPages int    `json:"total_pages"`
}

// Page represents the extracted text and geometry of a single page
type Page struct {
	PageNumber int     `json:"page_number"`
	Text       string  `json:"text"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

// Document represents the full extraction result for one uploaded PDF.
// It is built once per request and never mutated afterwards. Extraction
// failures are recorded in Error alongside whatever was already
// accumulated, they never abort the request.
type Document struct {
	Metadata   Metadata `json:"metadata"`
	Pages      []Page   `json:"pages"`
	Text       string   `json:"text"`
	TotalPages int      `json:"total_pages"`
	Error      string   `json:"error,omitempty"`
}

// Table represents a single row/column grid found by a table strategy
type Table struct {
	Page int        `json:"page"`
	Rows [][]string `json:"rows"`
}

// TableSet represents the result of one table-extraction strategy.
// A failed strategy yields an empty set with Error populated, matching
// the graceful-degradation policy of document extraction.
type TableSet struct {
	Tables     []Table `json:"tables"`
	TableCount int     `json:"table_count"`
	Error      string  `json:"error,omitempty"`
}
