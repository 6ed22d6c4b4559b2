package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SaiNageswarS/spec-core/engine"
	"github.com/SaiNageswarS/spec-core/llm"
	"github.com/SaiNageswarS/spec-core/schema"
	"github.com/stretchr/testify/assert"
)

type failingLLM struct{}

func (f *failingLLM) GenerateInference(ctx context.Context, messages []llm.Message, callback func(chunk string) error, opts ...llm.LLMOption) error {
	return fmt.Errorf("connection refused")
}

func (f *failingLLM) GetModel() string { return "fake-model" }

func TestJobModelIdentity(t *testing.T) {
	job := JobModel{ID: "job-1"}

	assert.Equal(t, "job-1", job.Id())
	assert.Equal(t, "analysisJobs", job.CollectionName())
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		next     int
		expected int
	}{
		{"advances", 10, 40, 40},
		{"never backwards", 60, 40, 60},
		{"caps at 100", 60, 120, 100},
		{"equal stays", 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampProgress(tt.current, tt.next))
		})
	}
}

func TestToResultRows(t *testing.T) {
	records := []schema.SpecRecord{
		{
			Rank:    1,
			Name:    "Power Rating",
			Options: []string{"5 KVA", "10 KVA"},
			Score:   4,
			SourcePresence: map[schema.SourceKey]bool{
				schema.SourceSearchKeywords: true,
				schema.SourceLmsChats:       false,
			},
		},
	}

	rows := toResultRows(records)

	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "Power Rating", rows[0].Name)
	assert.Equal(t, 4, rows[0].Score)
	assert.True(t, rows[0].Sources["search_keywords"])
	assert.False(t, rows[0].Sources["lms_chats"])
}

func TestTrackerNilCollectionDegradesToNoOp(t *testing.T) {
	tracker := NewTracker(nil, time.Hour)
	ctx := context.Background()

	jobID, err := tracker.Create(ctx, "diesel generator")
	assert.NoError(t, err)
	assert.NotEmpty(t, jobID)

	assert.NoError(t, tracker.UpdateStatus(ctx, jobID, JobAnalyzing, 20, "step", ""))
	assert.NoError(t, tracker.StoreResults(ctx, jobID, schema.NewWorkflowState("run-1", "diesel generator", nil, nil)))
	assert.NoError(t, tracker.Cleanup(ctx, jobID))

	_, err = tracker.GetStatus(ctx, jobID)
	assert.Error(t, err)
}

func TestTrackerDefaultTTL(t *testing.T) {
	tracker := NewTracker(nil, 0)

	assert.Equal(t, defaultResultsTTL, tracker.ttl)
}

func TestRunJobReportsFailedAnalysis(t *testing.T) {
	tracker := NewTracker(nil, time.Hour)
	orch := engine.NewOrchestrator(&failingLLM{})

	inputs := map[schema.SourceKey]string{
		schema.SourceWhatsappSpecs: "message\n" + makeRows(15),
	}
	st := schema.NewWorkflowState("run-1", "diesel generator", inputs, nil)

	err := tracker.RunJob(context.Background(), orch, st, "job-1")

	assert.Error(t, err)
	assert.Equal(t, schema.PhaseAllFailed, st.Phase())
}

func makeRows(n int) string {
	rows := ""
	for i := 0; i < n; i++ {
		rows += fmt.Sprintf("row %d\n", i)
	}
	return rows
}
