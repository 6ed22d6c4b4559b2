package engine

import (
	"fmt"

	"github.com/SaiNageswarS/spec-core/schema"
)

// Decision is the gate outcome for the driver loop.
type Decision int

const (
	Wait Decision = iota
	Proceed
	AllFailed
)

// EvaluateGate inspects every configured slot and decides whether the run
// can move to triangulation. It also advances the public phase and progress;
// extraction owns the 0-90 progress band, consensus the rest.
func EvaluateGate(st *schema.WorkflowState) Decision {
	statuses := st.SourceStatuses()
	total := len(statuses)
	if total == 0 {
		st.AppendLog("No sources configured")
		st.SetPhase(schema.PhaseAllAgentsFailed)
		return AllFailed
	}

	processed, completed, failed, excluded := 0, 0, 0, 0
	for _, status := range statuses {
		if status.Terminal() {
			processed++
		}
		switch status {
		case schema.StatusCompleted:
			completed++
		case schema.StatusFailed:
			failed++
		case schema.StatusExcluded:
			excluded++
		}
	}
	st.SetProgress(processed * 90 / total)

	if processed < total {
		st.SetPhase(fmt.Sprintf("processing (%d/%d completed)", processed, total))
		return Wait
	}

	st.AppendLog(fmt.Sprintf("All agents completed: %d successful, %d failed, %d excluded",
		completed, failed, excluded))
	if completed == 0 {
		st.SetPhase(schema.PhaseAllAgentsFailed)
		return AllFailed
	}

	st.SetPhase(schema.PhaseReadyForTriangulation)
	return Proceed
}
