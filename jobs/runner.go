package jobs

import (
	"context"

	"github.com/SaiNageswarS/spec-core/engine"
	"github.com/SaiNageswarS/spec-core/schema"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RunJob drives one orchestrator run under job tracking. Tracker write
// failures are logged but never abort the analysis itself.
func (t *Tracker) RunJob(ctx context.Context, orch *engine.Orchestrator, st *schema.WorkflowState, jobID string) error {
	_ = t.UpdateStatus(ctx, jobID, JobFetchingInputs, 10, "Preparing source inputs", "")
	_ = t.UpdateStatus(ctx, jobID, JobAnalyzing, 20, "Running extraction and triangulation", "")

	final := orch.Run(ctx, st)

	if final.Phase() != schema.PhaseCompleted {
		detail, _ := final.Consensus()
		if detail == "" {
			detail = "run ended in phase " + final.Phase()
		}
		_ = t.UpdateStatus(ctx, jobID, JobFailed, final.Progress(), "Analysis failed", detail)
		return status.Errorf(codes.Internal, "analysis failed in phase %s", final.Phase())
	}

	return t.StoreResults(ctx, jobID, final)
}
