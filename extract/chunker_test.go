package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SaiNageswarS/spec-core/schema"
	"github.com/stretchr/testify/assert"
)

func makeDataset(header string, rows int) string {
	lines := make([]string, 0, rows+1)
	lines = append(lines, header)
	for i := 0; i < rows; i++ {
		lines = append(lines, fmt.Sprintf("row %d,%d", i, i))
	}
	return strings.Join(lines, "\n")
}

func TestChunkExcludesSmallDataset(t *testing.T) {
	chunker := NewChunker()

	chunks, rows, reason := chunker.Chunk(schema.SourceWhatsappSpecs, makeDataset("message,count", 9))

	assert.Nil(t, chunks)
	assert.Equal(t, 9, rows)
	assert.Contains(t, reason, "9 rows, minimum 10 required")
}

func TestChunkProcessesBoundaryDataset(t *testing.T) {
	chunker := NewChunker()

	chunks, rows, reason := chunker.Chunk(schema.SourceWhatsappSpecs, makeDataset("message,count", 10))

	assert.Empty(t, reason)
	assert.Equal(t, 10, rows)
	assert.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "message,count\n"))
}

func TestChunkIgnoresBlankLines(t *testing.T) {
	chunker := NewChunker()
	raw := "header\n" + strings.Repeat("row\n\n", 12)

	_, rows, reason := chunker.Chunk(schema.SourceRejectionComments, raw)

	assert.Empty(t, reason)
	assert.Equal(t, 12, rows)
}

func TestChunkEmptyDataset(t *testing.T) {
	chunker := NewChunker()

	chunks, rows, reason := chunker.Chunk(schema.SourceLmsChats, "")

	assert.Nil(t, chunks)
	assert.Zero(t, rows)
	assert.NotEmpty(t, reason)
}

func TestChunkLmsChatsBudget(t *testing.T) {
	chunker := NewChunker()

	chunks, rows, reason := chunker.Chunk(schema.SourceLmsChats, makeDataset("chat,turns", 6500))

	assert.Empty(t, reason)
	assert.Equal(t, 6500, rows)
	assert.Len(t, chunks, 3)

	for _, chunk := range chunks {
		assert.True(t, strings.HasPrefix(chunk, "chat,turns\n"))
	}
	assert.Equal(t, 3001, len(strings.Split(chunks[0], "\n")))
	assert.Equal(t, 3001, len(strings.Split(chunks[1], "\n")))
	assert.Equal(t, 501, len(strings.Split(chunks[2], "\n")))
}

func TestChunkSearchKeywordsSortedByFrequency(t *testing.T) {
	chunker := NewChunker()
	raw := strings.Join([]string{
		"keyword,frequency",
		"low keyword,5",
		"top keyword,500",
		"mid keyword,50",
		"broken keyword,not-a-number",
		"row a,1", "row b,2", "row c,3", "row d,4", "row e,6", "row f,7",
	}, "\n")

	chunks, rows, reason := chunker.Chunk(schema.SourceSearchKeywords, raw)

	assert.Empty(t, reason)
	assert.Equal(t, 10, rows)
	assert.Len(t, chunks, 1)

	lines := strings.Split(chunks[0], "\n")
	assert.Equal(t, "keyword,frequency", lines[0])
	assert.Equal(t, "top keyword,500", lines[1])
	assert.Equal(t, "mid keyword,50", lines[2])
	// Non-numeric frequency sorts as zero, at the bottom
	assert.Equal(t, "broken keyword,not-a-number", lines[len(lines)-1])
}

func TestSplitRowsRepeatsHeader(t *testing.T) {
	rows := make([]string, 25)
	for i := range rows {
		rows[i] = fmt.Sprintf("row %d", i)
	}

	chunks := splitRows("header", rows, 10)

	assert.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.True(t, strings.HasPrefix(chunk, "header\n"))
	}
	assert.Contains(t, chunks[2], "row 24")
}

func TestRowFrequency(t *testing.T) {
	tests := []struct {
		row  string
		want float64
	}{
		{"keyword,120", 120},
		{"a,b,3.5", 3.5},
		{"keyword,not-a-number", 0},
		{"no-comma", 0},
	}

	for _, tt := range tests {
		t.Run(tt.row, func(t *testing.T) {
			assert.Equal(t, tt.want, rowFrequency(tt.row))
		})
	}
}
