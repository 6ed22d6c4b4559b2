package jobs

import (
	"time"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/spec-core/schema"
)

type JobStatus string

const (
	JobProcessing     JobStatus = "processing"
	JobFetchingInputs JobStatus = "fetching_inputs"
	JobAnalyzing      JobStatus = "analyzing"
	JobCompleted      JobStatus = "completed"
	JobFailed         JobStatus = "failed"
)

// JobModel is the persisted record of one analysis job. A Mongo TTL index on
// expiresAt removes expired records.
type JobModel struct {
	ID          string    `bson:"_id"`
	SubjectName string    `bson:"subjectName"`
	Status      JobStatus `bson:"status"`
	Progress    int       `bson:"progress"`
	Step        string    `bson:"step"`
	Error       string    `bson:"error,omitempty"`

	ConsensusText  string      `bson:"consensusText,omitempty"`
	ConsensusTable []ResultRow `bson:"consensusTable,omitempty"`
	RunLog         []string    `bson:"runLog,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

func (m JobModel) Id() string {
	return m.ID
}

func (m JobModel) CollectionName() string {
	return "analysisJobs"
}

// ResultRow is the stored form of one consensus table row.
type ResultRow struct {
	Rank    int             `bson:"rank"`
	Name    string          `bson:"name"`
	Options []string        `bson:"options"`
	Score   int             `bson:"score"`
	Sources map[string]bool `bson:"sources"`
}

func toResultRows(records []schema.SpecRecord) []ResultRow {
	return linq.Map(records, func(rec schema.SpecRecord) ResultRow {
		sources := make(map[string]bool, len(rec.SourcePresence))
		for key, present := range rec.SourcePresence {
			sources[string(key)] = present
		}
		return ResultRow{
			Rank:    rec.Rank,
			Name:    rec.Name,
			Options: rec.Options,
			Score:   rec.Score,
			Sources: sources,
		}
	})
}
