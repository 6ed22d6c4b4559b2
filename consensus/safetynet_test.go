package consensus

import (
	"strings"
	"testing"

	"github.com/SaiNageswarS/spec-core/schema"
	"github.com/stretchr/testify/assert"
)

func presenceOf(values ...bool) map[schema.SourceKey]bool {
	presence := make(map[schema.SourceKey]bool, len(schema.AllSources))
	for i, key := range schema.AllSources {
		if i < len(values) {
			presence[key] = values[i]
		}
	}
	return presence
}

func TestSafetyNetRemovesDuplicates(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "Power Rating", Score: 4, SourcePresence: presenceOf(true, true, true, true)},
		{Name: "  power rating ", Score: 2, SourcePresence: presenceOf(true, true, false, false)},
		{Name: "Fuel Type", Score: 3, SourcePresence: presenceOf(true, true, false, true)},
	}

	result, notes := EnforceSafetyNet(records)

	assert.Len(t, result, 2)
	assert.Equal(t, "Power Rating", result[0].Name)
	assert.Equal(t, 4, result[0].Score)

	joined := strings.Join(notes, "\n")
	assert.Contains(t, joined, "removed duplicate spec")
}

func TestSafetyNetRecomputesScores(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "Power Rating", Score: 9, SourcePresence: presenceOf(true, true, false, false)},
		{Name: "Fuel Type", Score: 3, SourcePresence: presenceOf(true, true, false, true)},
	}

	result, notes := EnforceSafetyNet(records)

	assert.Equal(t, 3, result[0].Score)
	assert.Equal(t, "Fuel Type", result[0].Name)
	assert.Equal(t, 2, result[1].Score)
	assert.Contains(t, strings.Join(notes, "\n"), `corrected score for "Power Rating" from 9 to 2`)
}

func TestSafetyNetSkipsRecomputeWithoutPresence(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "Power Rating", Score: 7},
	}

	result, _ := EnforceSafetyNet(records)

	assert.Equal(t, 7, result[0].Score)
}

func TestSafetyNetSortsAndTruncates(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "A", SourcePresence: presenceOf(true, false, false, false)},
		{Name: "B", SourcePresence: presenceOf(true, true, true, true)},
		{Name: "C", SourcePresence: presenceOf(true, true, false, false)},
		{Name: "D", SourcePresence: presenceOf(true, true, true, false)},
		{Name: "E", SourcePresence: presenceOf(false, false, false, false)},
		{Name: "F", SourcePresence: presenceOf(true, true, false, true)},
		{Name: "G", SourcePresence: presenceOf(false, true, false, false)},
	}

	result, notes := EnforceSafetyNet(records)

	assert.Len(t, result, MaxConsensusRows)
	assert.Equal(t, "B", result[0].Name)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Score, result[i].Score)
		assert.Equal(t, i+1, result[i].Rank)
	}
	assert.Equal(t, 1, result[0].Rank)
	assert.Contains(t, strings.Join(notes, "\n"), "truncated table from 7 to 5 rows")
}

func TestSafetyNetStableForEqualScores(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "First", SourcePresence: presenceOf(true, true, false, false)},
		{Name: "Second", SourcePresence: presenceOf(false, false, true, true)},
	}

	result, _ := EnforceSafetyNet(records)

	assert.Equal(t, "First", result[0].Name)
	assert.Equal(t, "Second", result[1].Name)
}

func TestSafetyNetNotesShortTable(t *testing.T) {
	records := []schema.SpecRecord{
		{Name: "Only One", SourcePresence: presenceOf(true, false, false, false)},
	}

	result, notes := EnforceSafetyNet(records)

	assert.Len(t, result, 1)
	assert.Equal(t, 1, result[0].Rank)
	assert.Contains(t, strings.Join(notes, "\n"), "only 1 specs available, expected 5")
}
