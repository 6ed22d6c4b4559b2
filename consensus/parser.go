package consensus

import (
	"strconv"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/spec-core/schema"
	"go.uber.org/zap"
)

// TableShape selects the column layout expected from the model.
type TableShape int

const (
	// PresenceShape is the consensus layout:
	// Score | Specification | Options | one Yes/No column per source.
	PresenceShape TableShape = iota
	// RankedShape is the extraction layout:
	// Rank | Specification | Option | Frequency.
	RankedShape
)

var headerKeywords = []string{
	"score", "rank", "specification", "options", "frequency",
	"internal", "buyer", "rejection", "chat",
}

// ParseSpecTable reads a markdown pipe table out of model output. Blank
// lines, header lines and separator lines are skipped; rows with too few
// fields are dropped. When no data row survives, a single sentinel record is
// returned so downstream stages always have something to show.
func ParseSpecTable(text string, shape TableShape) []schema.SpecRecord {
	minFields := 4
	if shape == PresenceShape {
		minFields = 3 + len(schema.AllSources)
	}

	var records []schema.SpecRecord
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}
		if isSeparatorLine(line) || isHeaderLine(line) {
			continue
		}

		fields := splitTableRow(line)
		if len(fields) < minFields {
			continue
		}

		if shape == PresenceShape {
			records = append(records, parsePresenceRow(fields))
		} else {
			records = append(records, parseRankedRow(fields))
		}
	}

	if len(records) == 0 {
		logger.Error("No rows parsed from spec table", zap.Int("textLength", len(text)))
		return []schema.SpecRecord{sentinelRecord()}
	}
	return records
}

// sentinelRecord stands in for an unparseable table.
func sentinelRecord() schema.SpecRecord {
	presence := make(map[schema.SourceKey]bool, len(schema.AllSources))
	for _, key := range schema.AllSources {
		presence[key] = false
	}
	return schema.SpecRecord{
		Name:             "Parse Error",
		Options:          []string{"N/A"},
		FrequencyDisplay: "N/A",
		SourcePresence:   presence,
	}
}

func parsePresenceRow(fields []string) schema.SpecRecord {
	score, err := strconv.Atoi(fields[0])
	if err != nil {
		score = 0
	}

	presence := make(map[schema.SourceKey]bool, len(schema.AllSources))
	for i, key := range schema.AllSources {
		presence[key] = strings.EqualFold(fields[3+i], "yes")
	}

	return schema.SpecRecord{
		Score:          score,
		Name:           fields[1],
		Options:        parseOptions(fields[2]),
		SourcePresence: presence,
	}
}

func parseRankedRow(fields []string) schema.SpecRecord {
	rank, err := strconv.Atoi(fields[0])
	if err != nil {
		rank = 0
	}

	return schema.SpecRecord{
		Rank:             rank,
		Name:             fields[1],
		Options:          parseOptions(fields[2]),
		FrequencyDisplay: fields[3],
	}
}

func parseOptions(field string) []string {
	parts := linq.Map(strings.Split(field, ","), strings.TrimSpace)
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			options = append(options, p)
		}
	}
	return options
}

func splitTableRow(line string) []string {
	line = strings.Trim(line, "|")
	return linq.Map(strings.Split(line, "|"), strings.TrimSpace)
}

func isSeparatorLine(line string) bool {
	return strings.Trim(line, "-|: \t") == ""
}

// isHeaderLine treats any line carrying more than one column-label keyword
// as a header.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	hits := 0
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits > 1
}
