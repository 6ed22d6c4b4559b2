package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/spec-core/consensus"
	"github.com/SaiNageswarS/spec-core/extract"
	"github.com/SaiNageswarS/spec-core/llm"
	"github.com/SaiNageswarS/spec-core/schema"
	"go.uber.org/zap"
)

// Orchestrator fans extraction tasks out over the configured sources, holds
// at the completion gate, and hands the survivors to the consensus builder.
type Orchestrator struct {
	task    *extract.Task
	builder *consensus.Builder
}

func NewOrchestrator(client llm.LLMClient) *Orchestrator {
	return &Orchestrator{
		task:    extract.NewTask(client),
		builder: consensus.NewBuilder(client),
	}
}

// Run drives a workflow to a terminal phase, blocking until it is reached.
func (o *Orchestrator) Run(ctx context.Context, st *schema.WorkflowState) *schema.WorkflowState {
	return o.execute(ctx, st, &NoOpProgressReporter{})
}

// Stream drives the workflow on a background goroutine and emits a snapshot
// after every transition. The channel closes when the run terminates.
// Consumers may abandon the channel at any point without corrupting the run.
func (o *Orchestrator) Stream(ctx context.Context, st *schema.WorkflowState) <-chan *Snapshot {
	reporter := NewChannelReporter(16)
	go func() {
		defer reporter.Close()
		o.execute(ctx, st, reporter)
	}()
	return reporter.Chan()
}

func (o *Orchestrator) execute(ctx context.Context, st *schema.WorkflowState, reporter ProgressReporter) *schema.WorkflowState {
	configured := st.ConfiguredSources()
	st.SetProgress(5)
	st.AppendLog(fmt.Sprintf("Workflow started: %d extraction agents", len(configured)))
	logger.Info("Workflow started",
		zap.String("runId", st.RunID),
		zap.String("subject", st.SubjectName),
		zap.Int("sources", len(configured)))
	reporter.Send(snapshotOf(st, false))

	// Buffered to task count so finished tasks never block on an abandoned
	// driver.
	done := make(chan schema.SourceKey, len(configured))
	for _, key := range configured {
		go o.runSource(ctx, st, key, done)
	}

	for {
		switch EvaluateGate(st) {
		case Wait:
			reporter.Send(snapshotOf(st, false))
			<-done
		case Proceed:
			reporter.Send(snapshotOf(st, false))
			o.buildConsensus(ctx, st)
			reporter.Send(snapshotOf(st, true))
			return st
		case AllFailed:
			o.failAll(st)
			reporter.Send(snapshotOf(st, true))
			return st
		}
	}
}

// runSource writes to its own slot only and signals done exactly once.
func (o *Orchestrator) runSource(ctx context.Context, st *schema.WorkflowState, key schema.SourceKey, done chan<- schema.SourceKey) {
	st.MarkProcessing(key)
	result := o.task.Run(ctx, key, st.SubjectName, st.Input(key))
	st.SetExtraction(key, result)
	st.AppendLog(sourceLogLine(key, result))
	done <- key
}

func sourceLogLine(key schema.SourceKey, res *schema.ExtractionResult) string {
	switch res.Status {
	case schema.StatusCompleted:
		return fmt.Sprintf("Agent %s completed in %.2fs (%d rows, %d chunks)",
			key, res.ProcessingSeconds, res.RowCount, res.ChunkCount)
	case schema.StatusExcluded:
		return fmt.Sprintf("Agent %s excluded: %s", key, res.ExclusionReason)
	default:
		return fmt.Sprintf("Agent %s failed: %s", key, res.ErrorDetail)
	}
}

func (o *Orchestrator) buildConsensus(ctx context.Context, st *schema.WorkflowState) {
	st.SetPhase(schema.PhaseTriangulating)

	completed := make(map[schema.SourceKey]*schema.ExtractionResult)
	for _, key := range st.ConfiguredSources() {
		if res := st.Extraction(key); res != nil && res.Status == schema.StatusCompleted {
			completed[key] = res
		}
	}

	outcome, err := o.builder.Build(ctx, st.SubjectName, completed, st.ReferenceSpecs())
	if err != nil {
		st.AppendLog(fmt.Sprintf("Triangulation failed: %v", err))
		st.SetPhase(schema.PhaseTriangulationFailed)
		logger.Error("Triangulation failed", zap.String("runId", st.RunID), zap.Error(err))
		return
	}

	for _, note := range outcome.Notes {
		st.AppendLog(note)
	}
	st.SetConsensus(outcome.Text, outcome.Table)
	st.SetProgress(100)
	st.SetPhase(schema.PhaseCompleted)
	logger.Info("Workflow completed",
		zap.String("runId", st.RunID), zap.Int("specs", len(outcome.Table)))
}

func (o *Orchestrator) failAll(st *schema.WorkflowState) {
	var details []string
	for _, key := range st.ConfiguredSources() {
		res := st.Extraction(key)
		if res == nil {
			continue
		}
		detail := res.ErrorDetail
		if detail == "" {
			detail = res.ExclusionReason
		}
		details = append(details, fmt.Sprintf("%s: %s", key, detail))
	}

	st.SetConsensus("Processing failed for all sources:\n"+strings.Join(details, "\n"), nil)
	st.AppendLog("Workflow failed: all extraction agents failed")
	st.SetPhase(schema.PhaseAllFailed)
	logger.Error("Workflow failed, no source completed", zap.String("runId", st.RunID))
}

func snapshotOf(st *schema.WorkflowState, done bool) *Snapshot {
	return &Snapshot{
		RunID:          st.RunID,
		Phase:          st.Phase(),
		Progress:       st.Progress(),
		SourceStatuses: st.SourceStatuses(),
		Done:           done,
	}
}
