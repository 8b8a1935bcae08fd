package pdf

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCells(t *testing.T) {
	s := NewTextGridStrategy()

	tests := []struct {
		name  string
		texts []pdf.Text
		want  []string
	}{
		{
			name:  "empty row",
			texts: nil,
			want:  nil,
		},
		{
			name: "single run",
			texts: []pdf.Text{
				{S: "Total", X: 10, W: 30},
			},
			want: []string{"Total"},
		},
		{
			name: "adjacent runs join without a space",
			texts: []pdf.Text{
				{S: "Part", X: 10, W: 20},
				{S: "No", X: 31, W: 10},
			},
			want: []string{"PartNo"},
		},
		{
			name: "word gap inserts a space",
			texts: []pdf.Text{
				{S: "Unit", X: 10, W: 18},
				{S: "Price", X: 31, W: 20},
			},
			want: []string{"Unit Price"},
		},
		{
			name: "cell gap starts a new cell",
			texts: []pdf.Text{
				{S: "MY-FLOWMAX", X: 10, W: 60},
				{S: "6", X: 200, W: 6},
				{S: "1080.75", X: 300, W: 40},
			},
			want: []string{"MY-FLOWMAX", "6", "1080.75"},
		},
		{
			name: "runs are sorted by position first",
			texts: []pdf.Text{
				{S: "Qty", X: 200, W: 15},
				{S: "Part", X: 10, W: 20},
			},
			want: []string{"Part", "Qty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.splitCells(tt.texts))
		})
	}
}

func TestGridsFromRows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want []Table
	}{
		{
			name: "no rows",
			rows: nil,
			want: []Table{},
		},
		{
			name: "single column rows form no table",
			rows: [][]string{{"title"}, {"paragraph"}, {"footer"}},
			want: []Table{},
		},
		{
			name: "single multi-cell row forms no table",
			rows: [][]string{{"a", "b"}},
			want: []Table{},
		},
		{
			name: "run of multi-cell rows forms one table",
			rows: [][]string{
				{"heading"},
				{"Part", "Qty"},
				{"MY-FLOWMAX", "6"},
				{"MY-FLOWGRID", "20"},
				{"footer"},
			},
			want: []Table{
				{Page: 3, Rows: [][]string{
					{"Part", "Qty"},
					{"MY-FLOWMAX", "6"},
					{"MY-FLOWGRID", "20"},
				}},
			},
		},
		{
			name: "separated runs form separate tables",
			rows: [][]string{
				{"a", "b"},
				{"c", "d"},
				{"break"},
				{"e", "f"},
				{"g", "h"},
			},
			want: []Table{
				{Page: 3, Rows: [][]string{{"a", "b"}, {"c", "d"}}},
				{Page: 3, Rows: [][]string{{"e", "f"}, {"g", "h"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gridsFromRows(tt.rows, 3))
		})
	}
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "content_stream", NewContentStreamStrategy().Name())
	assert.Equal(t, "text_grid", NewTextGridStrategy().Name())
}

func TestTextGridStrategyInvalidData(t *testing.T) {
	s := NewTextGridStrategy()

	tables, err := s.ExtractTables([]byte("this is not a pdf"))
	require.Error(t, err)
	assert.Empty(t, tables)
}

func TestContentStreamStrategyInvalidData(t *testing.T) {
	s := NewContentStreamStrategy()

	tables, err := s.ExtractTables([]byte("this is not a pdf"))
	require.Error(t, err)
	assert.Empty(t, tables)
}

func TestWriteTempPDFUniquePaths(t *testing.T) {
	data := []byte("%PDF-1.4")

	path1, cleanup1, err := writeTempPDF(data)
	require.NoError(t, err)
	defer cleanup1()

	path2, cleanup2, err := writeTempPDF(data)
	require.NoError(t, err)
	defer cleanup2()

	assert.NotEqual(t, path1, path2)
	assert.FileExists(t, path1)
	assert.FileExists(t, path2)

	cleanup1()
	assert.NoFileExists(t, path1)
}
