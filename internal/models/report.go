// internal/models/report.go
package models

import "time"

// ReportStatus tracks a report through its lifecycle.
type ReportStatus string

const (
	ReportStatusGenerating ReportStatus = "generating"
	ReportStatusCompleted  ReportStatus = "completed"
	ReportStatusFailed     ReportStatus = "failed"
)

// NoResponsePlaceholder is the literal answer text used for unanswered questions.
const NoResponsePlaceholder = "No response provided"

// ProductSnapshot is the product state frozen into a report at assembly time.
type ProductSnapshot struct {
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReportEntry pairs one question with its answer (or the placeholder).
type ReportEntry struct {
	Question   string `json:"question"`
	Response   string `json:"response"`
	StepNumber int    `json:"step"`
}

// ReportRecord is the canonical assembled report. Created exactly once per
// assembly and immutable thereafter; the sole input to document rendering.
// Entries are in ascending step order, one per question, no gaps.
type ReportRecord struct {
	ReportID    string          `json:"report_id"`
	Product     ProductSnapshot `json:"product"`
	Entries     []ReportEntry   `json:"questions"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Report is the persisted wrapper around a ReportRecord. Report identity is
// scoped per (productId, submissionId); several reports may exist for the
// same pair, each under its own ID.
type Report struct {
	ID           string       `json:"id"`
	ProductID    string       `json:"productId"`
	UserID       string       `json:"userId"`
	SubmissionID string       `json:"submissionId"`
	Record       ReportRecord `json:"reportData"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	CompletedAt  *time.Time   `json:"completedAt,omitempty"`
}
