package schema

// SourceKey identifies one of the configured data sources feeding extraction.
type SourceKey string

const (
	SourceSearchKeywords    SourceKey = "search_keywords"
	SourceWhatsappSpecs     SourceKey = "whatsapp_specs"
	SourceRejectionComments SourceKey = "rejection_comments"
	SourceLmsChats          SourceKey = "lms_chats"
)

// AllSources lists every source in the canonical column order used by
// triangulation tables.
var AllSources = []SourceKey{
	SourceSearchKeywords,
	SourceWhatsappSpecs,
	SourceRejectionComments,
	SourceLmsChats,
}

// DatasetType returns the dataset label passed to the model for a source.
func (k SourceKey) DatasetType() string {
	switch k {
	case SourceSearchKeywords:
		return "internal-search"
	case SourceWhatsappSpecs:
		return "buyer-specs"
	case SourceRejectionComments:
		return "rejection-reasons"
	case SourceLmsChats:
		return "chat-data"
	}
	return string(k)
}

// SourceStatus is the lifecycle state of one extraction task.
type SourceStatus string

const (
	StatusIdle       SourceStatus = "idle"
	StatusProcessing SourceStatus = "processing"
	StatusCompleted  SourceStatus = "completed"
	StatusFailed     SourceStatus = "failed"
	StatusExcluded   SourceStatus = "excluded"
)

// Terminal reports whether a task in this status will make no further writes.
func (s SourceStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExcluded
}

// ExtractionResult is the outcome of one source extraction task.
type ExtractionResult struct {
	SourceType        string
	Status            SourceStatus
	RawText           string
	RowCount          int
	ChunkCount        int
	ProcessingSeconds float64
	ErrorDetail       string
	ExclusionReason   string
}
