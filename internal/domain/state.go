package domain

// Phase enumerates pipeline milestones.
type Phase string

const (
	PhaseAwaitingSearch  Phase = "awaiting_search"
	PhaseAwaitingSummary Phase = "awaiting_summary"
	PhaseAwaitingPublish Phase = "awaiting_publish"
	PhaseDone            Phase = "done"
)

// WorkflowState accumulates the output of each pipeline stage. The
// orchestrator owns the instance for the duration of one run and writes each
// field exactly once, in stage order. A nil slice means the producing stage
// has not run yet; a non-nil empty slice means it ran and found nothing.
type WorkflowState struct {
	Phase     Phase
	Articles  []Article
	Summaries []Summary
	Report    string
}

// NewWorkflowState returns the initial state with all fields absent.
func NewWorkflowState() WorkflowState {
	return WorkflowState{Phase: PhaseAwaitingSearch}
}
