package model

// PipelinePhase is one ordered stage of a research run.
type PipelinePhase string

const (
	PhaseSearching         PipelinePhase = "searching"
	PhaseScraping          PipelinePhase = "scraping"
	PhaseCollectingReviews PipelinePhase = "collecting_reviews"
	PhaseAnalyzing         PipelinePhase = "analyzing"
	PhaseComplete          PipelinePhase = "complete"
)

// EventStatus qualifies a pipeline event within its phase.
type EventStatus string

const (
	StatusStarted   EventStatus = "started"
	StatusProgress  EventStatus = "progress"
	StatusCompleted EventStatus = "completed"
	StatusError     EventStatus = "error"
)

// PipelineEvent is one progress frame streamed to the client. Data is
// only set on selected events: the search completion carries a count,
// the terminal complete event carries the AnalysisReport.
type PipelineEvent struct {
	Phase   PipelinePhase `json:"phase"`
	Status  EventStatus   `json:"status"`
	Message string        `json:"message"`
	Data    any           `json:"data,omitempty"`
}
