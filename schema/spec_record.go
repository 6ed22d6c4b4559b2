package schema

// SpecRecord is one row of a parsed specification table. Ranked extraction
// tables fill Rank/Options/FrequencyDisplay; triangulation tables fill
// Score/SourcePresence as well.
type SpecRecord struct {
	Rank             int
	Name             string
	Options          []string
	FrequencyDisplay string
	SourcePresence   map[SourceKey]bool
	Score            int
}

// PresenceCount returns how many sources attest to this record.
func (r SpecRecord) PresenceCount() int {
	n := 0
	for _, present := range r.SourcePresence {
		if present {
			n++
		}
	}
	return n
}
