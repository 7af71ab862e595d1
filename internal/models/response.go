// internal/models/response.go
package models

import "time"

// Response is a user-submitted answer to one question within a submission.
// The write path (question existence, ownership, submission defaulting) is
// owned by the CRUD layer; the report pipeline consumes responses read-only.
type Response struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"questionId"`
	ProductID    string    `json:"productId"`
	UserID       string    `json:"userId"`
	ResponseText string    `json:"responseText"`
	SubmissionID string    `json:"submissionId"`
	CreatedAt    time.Time `json:"createdAt"`
}
