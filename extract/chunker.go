package extract

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/SaiNageswarS/spec-core/schema"
)

// MinRecords is the smallest dataset worth sending to the model. Sources
// below it are excluded from the run rather than failed.
const MinRecords = 10

// Per-source chunk budgets in data rows. Chat transcripts are long per row,
// keyword style datasets are short.
var chunkBudgets = map[schema.SourceKey]int{
	schema.SourceLmsChats:          3000,
	schema.SourceSearchKeywords:    8500,
	schema.SourceWhatsappSpecs:     8500,
	schema.SourceRejectionComments: 8500,
}

const defaultChunkBudget = 5000

type Chunker struct{}

func NewChunker() *Chunker {
	return &Chunker{}
}

// Chunk splits a raw CSV-style dataset into model-sized pieces. The first
// line is the header and is repeated at the top of every chunk. Returns the
// chunks, the data row count, and a non-empty exclusion reason when the
// dataset is too small to process.
func (c *Chunker) Chunk(key schema.SourceKey, raw string) ([]string, int, string) {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, 0, "dataset has no header row"
	}

	header := lines[0]
	rows := make([]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, line)
	}

	if len(rows) < MinRecords {
		return nil, len(rows), fmt.Sprintf("insufficient data: %d rows, minimum %d required", len(rows), MinRecords)
	}

	if key == schema.SourceSearchKeywords {
		sortByFrequency(rows)
	}

	budget := chunkBudgets[key]
	if budget == 0 {
		budget = defaultChunkBudget
	}
	return splitRows(header, rows, budget), len(rows), ""
}

// sortByFrequency orders keyword rows by their trailing frequency column,
// highest first, so the strongest signal lands in the earliest chunks.
func sortByFrequency(rows []string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rowFrequency(rows[i]) > rowFrequency(rows[j])
	})
}

func rowFrequency(row string) float64 {
	fields := strings.Split(row, ",")
	if len(fields) < 2 {
		return 0
	}

	freq, err := strconv.ParseFloat(strings.TrimSpace(fields[len(fields)-1]), 64)
	if err != nil {
		return 0
	}
	return freq
}

func splitRows(header string, rows []string, budget int) []string {
	chunks := make([]string, 0, (len(rows)+budget-1)/budget)
	for start := 0; start < len(rows); start += budget {
		end := start + budget
		if end > len(rows) {
			end = len(rows)
		}
		chunk := append([]string{header}, rows[start:end]...)
		chunks = append(chunks, strings.Join(chunk, "\n"))
	}
	return chunks
}
