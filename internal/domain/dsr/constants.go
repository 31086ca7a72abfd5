package dsr

const (
	TypeExport = "export"
	TypeDelete = "delete"

	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
