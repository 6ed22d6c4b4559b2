package consensus

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/spec-core/schema"
	"go.uber.org/zap"
)

// MaxConsensusRows is the size of the final consensus table.
const MaxConsensusRows = 5

// EnforceSafetyNet deterministically repairs the consensus table after the
// model layers have run: duplicate names are dropped (first occurrence wins),
// scores are recomputed from source presence, rows are sorted by score and
// capped, and ranks are renumbered contiguously. Returns the repaired table
// and a note per repair made.
func EnforceSafetyNet(records []schema.SpecRecord) ([]schema.SpecRecord, []string) {
	var notes []string

	seen := ds.NewSet[string]()
	deduped := make([]schema.SpecRecord, 0, len(records))
	for _, rec := range records {
		nameKey := strings.ToLower(strings.TrimSpace(rec.Name))
		if seen.Contains(nameKey) {
			notes = append(notes, fmt.Sprintf("Safety net: removed duplicate spec %q", rec.Name))
			logger.Info("Safety net removed duplicate spec", zap.String("spec", rec.Name))
			continue
		}
		seen.Add(nameKey)
		deduped = append(deduped, rec)
	}

	for i := range deduped {
		if deduped[i].SourcePresence == nil {
			continue
		}
		recomputed := deduped[i].PresenceCount()
		if recomputed != deduped[i].Score {
			notes = append(notes, fmt.Sprintf("Safety net: corrected score for %q from %d to %d",
				deduped[i].Name, deduped[i].Score, recomputed))
			deduped[i].Score = recomputed
		}
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score > deduped[j].Score
	})

	if len(deduped) > MaxConsensusRows {
		notes = append(notes, fmt.Sprintf("Safety net: truncated table from %d to %d rows",
			len(deduped), MaxConsensusRows))
		deduped = deduped[:MaxConsensusRows]
	} else if len(deduped) < MaxConsensusRows {
		notes = append(notes, fmt.Sprintf("Safety net: only %d specs available, expected %d",
			len(deduped), MaxConsensusRows))
	}

	for i := range deduped {
		deduped[i].Rank = i + 1
	}
	return deduped, notes
}
