// internal/store/responses.go
package store

import (
	"context"
	"database/sql"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/models"
)

// ResponseStore reads user-submitted answers. Writes happen in the CRUD
// layer; the report pipeline is a read-only consumer.
type ResponseStore struct {
	db *sql.DB
}

func NewResponseStore(db *sql.DB) *ResponseStore {
	return &ResponseStore{db: db}
}

// ListForSubmission returns every response recorded for a product within one
// submission by one user. At most one response exists per (question,
// submission) pair.
func (s *ResponseStore) ListForSubmission(ctx context.Context, productID, userID, submissionID string) ([]models.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_id, product_id, user_id, response_text, submission_id, created_at
		FROM responses
		WHERE product_id = $1 AND user_id = $2 AND submission_id = $3`,
		productID, userID, submissionID,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list responses", err)
	}
	defer rows.Close()

	var out []models.Response
	for rows.Next() {
		var r models.Response
		if err := rows.Scan(&r.ID, &r.QuestionID, &r.ProductID, &r.UserID, &r.ResponseText, &r.SubmissionID, &r.CreatedAt); err != nil {
			return nil, apperrors.NewPersistenceError("scan response", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list responses", err)
	}

	return out, nil
}
