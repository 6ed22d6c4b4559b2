package schema

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testInputs() map[SourceKey]string {
	return map[SourceKey]string{
		SourceSearchKeywords:    "keyword,frequency\nrow1,1",
		SourceWhatsappSpecs:     "message\nrow1",
		SourceRejectionComments: "comment\nrow1",
		SourceLmsChats:          "chat\nrow1",
	}
}

func TestNewWorkflowStateAllocatesSlots(t *testing.T) {
	st := NewWorkflowState("run-1", "diesel generator", testInputs(), nil)

	assert.Equal(t, "run-1", st.RunID)
	assert.Equal(t, "diesel generator", st.SubjectName)
	assert.Equal(t, AllSources, st.ConfiguredSources())
	assert.Equal(t, PhaseStarting, st.Phase())

	for _, key := range AllSources {
		assert.Equal(t, StatusIdle, st.SourceStatus(key))
		assert.Nil(t, st.Extraction(key))
	}
}

func TestNewWorkflowStateSkipsEmptyInputs(t *testing.T) {
	inputs := testInputs()
	inputs[SourceLmsChats] = "   \n"
	delete(inputs, SourceWhatsappSpecs)

	st := NewWorkflowState("run-1", "diesel generator", inputs, nil)

	assert.Equal(t, []SourceKey{SourceSearchKeywords, SourceRejectionComments}, st.ConfiguredSources())
	assert.Equal(t, StatusIdle, st.SourceStatus(SourceLmsChats))
	assert.Empty(t, st.Input(SourceLmsChats))
}

func TestSetExtractionUpdatesSlot(t *testing.T) {
	st := NewWorkflowState("run-1", "diesel generator", testInputs(), nil)

	st.MarkProcessing(SourceSearchKeywords)
	assert.Equal(t, StatusProcessing, st.SourceStatus(SourceSearchKeywords))

	st.SetExtraction(SourceSearchKeywords, &ExtractionResult{
		SourceType: "internal-search",
		Status:     StatusCompleted,
		RowCount:   42,
	})

	assert.Equal(t, StatusCompleted, st.SourceStatus(SourceSearchKeywords))
	assert.Equal(t, 42, st.Extraction(SourceSearchKeywords).RowCount)
	// Other slots untouched
	assert.Equal(t, StatusIdle, st.SourceStatus(SourceLmsChats))
}

func TestProgressIsMonotonic(t *testing.T) {
	st := NewWorkflowState("run-1", "diesel generator", testInputs(), nil)

	st.SetProgress(45)
	assert.Equal(t, 45, st.Progress())

	st.SetProgress(20)
	assert.Equal(t, 45, st.Progress())

	st.SetProgress(150)
	assert.Equal(t, 100, st.Progress())
}

func TestAppendLogConcurrent(t *testing.T) {
	st := NewWorkflowState("run-1", "diesel generator", testInputs(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.AppendLog(fmt.Sprintf("line %d", n))
		}(i)
	}
	wg.Wait()

	assert.Len(t, st.Log(), 20)
}

func TestTerminalPhase(t *testing.T) {
	st := NewWorkflowState("run-1", "diesel generator", testInputs(), nil)
	assert.False(t, st.TerminalPhase())

	for _, phase := range []string{PhaseCompleted, PhaseAllFailed, PhaseTriangulationFailed} {
		st.SetPhase(phase)
		assert.True(t, st.TerminalPhase(), phase)
	}

	st.SetPhase(PhaseTriangulating)
	assert.False(t, st.TerminalPhase())
}

func TestDatasetTypeMapping(t *testing.T) {
	assert.Equal(t, "internal-search", SourceSearchKeywords.DatasetType())
	assert.Equal(t, "buyer-specs", SourceWhatsappSpecs.DatasetType())
	assert.Equal(t, "rejection-reasons", SourceRejectionComments.DatasetType())
	assert.Equal(t, "chat-data", SourceLmsChats.DatasetType())
}
