package schema

import (
	"strings"
	"sync"
)

// Workflow phases observed by stream consumers. Completed, all_failed and
// triangulation_failed are terminal.
const (
	PhaseStarting              = "starting_extraction"
	PhaseReadyForTriangulation = "ready_for_triangulation"
	PhaseAllAgentsFailed       = "all_agents_failed"
	PhaseTriangulating         = "triangulating"
	PhaseCompleted             = "completed"
	PhaseAllFailed             = "all_failed"
	PhaseTriangulationFailed   = "triangulation_failed"
)

// SourceSlot is the per-source write target inside a run. Slots are allocated
// once at construction; each extraction task touches only its own slot, and
// all access goes through the state mutex so the gate sees a consistent view.
type SourceSlot struct {
	input  string
	status SourceStatus
	result *ExtractionResult
}

// WorkflowState carries everything a run reads and writes. The log is
// append-only and progress never decreases.
type WorkflowState struct {
	RunID       string
	SubjectName string

	mu       sync.Mutex
	slots    map[SourceKey]*SourceSlot
	ordered  []SourceKey
	refSpecs []ReferenceSpec
	phase    string
	progress int
	log      []string

	consensusText  string
	consensusTable []SpecRecord
}

// NewWorkflowState allocates a state with one slot per configured source.
// Sources with empty input are not configured and get no slot.
func NewWorkflowState(runID, subjectName string, inputs map[SourceKey]string, refSpecs []ReferenceSpec) *WorkflowState {
	st := &WorkflowState{
		RunID:       runID,
		SubjectName: subjectName,
		slots:       make(map[SourceKey]*SourceSlot),
		refSpecs:    refSpecs,
		phase:       PhaseStarting,
	}

	for _, key := range AllSources {
		input, ok := inputs[key]
		if !ok || strings.TrimSpace(input) == "" {
			continue
		}
		st.slots[key] = &SourceSlot{input: input, status: StatusIdle}
		st.ordered = append(st.ordered, key)
	}
	return st
}

// ConfiguredSources returns the sources that have input, in canonical order.
func (s *WorkflowState) ConfiguredSources() []SourceKey {
	out := make([]SourceKey, len(s.ordered))
	copy(out, s.ordered)
	return out
}

func (s *WorkflowState) Input(key SourceKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[key]; ok {
		return slot.input
	}
	return ""
}

func (s *WorkflowState) MarkProcessing(key SourceKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[key]; ok {
		slot.status = StatusProcessing
	}
}

// SetExtraction records a task outcome. It is the single terminal write for a
// slot; the task goroutine makes no writes after it.
func (s *WorkflowState) SetExtraction(key SourceKey, result *ExtractionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[key]; ok {
		slot.result = result
		slot.status = result.Status
	}
}

func (s *WorkflowState) SourceStatus(key SourceKey) SourceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[key]; ok {
		return slot.status
	}
	return StatusIdle
}

func (s *WorkflowState) Extraction(key SourceKey) *ExtractionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slot, ok := s.slots[key]; ok {
		return slot.result
	}
	return nil
}

// SourceStatuses returns a snapshot of every configured slot status.
func (s *WorkflowState) SourceStatuses() map[SourceKey]SourceStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[SourceKey]SourceStatus, len(s.slots))
	for key, slot := range s.slots {
		out[key] = slot.status
	}
	return out
}

func (s *WorkflowState) ReferenceSpecs() []ReferenceSpec {
	out := make([]ReferenceSpec, len(s.refSpecs))
	copy(out, s.refSpecs)
	return out
}

func (s *WorkflowState) AppendLog(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, line)
}

func (s *WorkflowState) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// SetProgress raises progress to pct. Lower values are ignored so progress
// never moves backwards within a run.
func (s *WorkflowState) SetProgress(pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pct > 100 {
		pct = 100
	}
	if pct > s.progress {
		s.progress = pct
	}
}

func (s *WorkflowState) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *WorkflowState) SetPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
}

func (s *WorkflowState) Phase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// TerminalPhase reports whether the run has reached a final phase.
func (s *WorkflowState) TerminalPhase() bool {
	phase := s.Phase()
	return phase == PhaseCompleted || phase == PhaseAllFailed || phase == PhaseTriangulationFailed
}

func (s *WorkflowState) SetConsensus(text string, table []SpecRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consensusText = text
	s.consensusTable = table
}

func (s *WorkflowState) Consensus() (string, []SpecRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consensusText, s.consensusTable
}
