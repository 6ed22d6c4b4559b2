package consensus

import (
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/spec-core/schema"
)

// FormatReferenceSpecs renders the reference catalog as prompt input.
func FormatReferenceSpecs(refs []schema.ReferenceSpec) string {
	if len(refs) == 0 {
		return "No reference specifications available."
	}

	lines := linq.Map(refs, func(r schema.ReferenceSpec) string {
		return fmt.Sprintf("| %s | %s | %s | %s | %s |",
			r.Name, r.Option, r.FrequencyDisplay, r.Status, r.Importance)
	})
	return "| Specification | Options | Frequency | Status | Importance |\n" +
		strings.Join(lines, "\n")
}

// FormatSourceResults renders every completed extraction as one block per
// source, in canonical column order.
func FormatSourceResults(results map[schema.SourceKey]*schema.ExtractionResult) string {
	var sections []string
	for _, key := range schema.AllSources {
		res, ok := results[key]
		if !ok || res.Status != schema.StatusCompleted {
			continue
		}
		sections = append(sections, fmt.Sprintf("--- %s (%d rows) ---\n%s",
			res.SourceType, res.RowCount, res.RawText))
	}

	if len(sections) == 0 {
		return "No source data available."
	}
	return strings.Join(sections, "\n\n")
}

// FormatConsensusTable renders the final table for console output and stored
// results.
func FormatConsensusTable(records []schema.SpecRecord) string {
	var sb strings.Builder
	sb.WriteString("| Rank | Score | Specification | Options | Internal Search | Buyer Specs | Rejection Reasons | Chat Data |\n")
	sb.WriteString("|------|-------|---------------|---------|-----------------|-------------|-------------------|-----------|\n")

	for _, rec := range records {
		presence := linq.Map(schema.AllSources, func(key schema.SourceKey) string {
			if rec.SourcePresence[key] {
				return "Yes"
			}
			return "No"
		})
		fmt.Fprintf(&sb, "| %d | %d | %s | %s | %s |\n",
			rec.Rank, rec.Score, rec.Name,
			strings.Join(rec.Options, ", "),
			strings.Join(presence, " | "))
	}
	return sb.String()
}
