// internal/store/questions.go
package store

import (
	"context"
	"database/sql"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/models"
)

// QuestionStore persists and reads generated questions.
type QuestionStore struct {
	db *sql.DB
}

func NewQuestionStore(db *sql.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// InsertBatch writes one generated question set inside a single transaction,
// so a product either gets its full batch or nothing.
func (s *QuestionStore) InsertBatch(ctx context.Context, batch []models.Question) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewPersistenceError("begin question batch", err)
	}
	defer tx.Rollback()

	for _, q := range batch {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO questions (id, product_id, question_text, question_type, step_number, category, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.ID, q.ProductID, q.Text, q.Origin.PersistedType(), q.StepNumber, q.Category, q.CreatedAt,
		)
		if err != nil {
			return apperrors.NewPersistenceError("insert question", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewPersistenceError("commit question batch", err)
	}
	return nil
}

// ListByProduct returns all questions of a product in ascending step order.
func (s *QuestionStore) ListByProduct(ctx context.Context, productID string) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, question_text, question_type, step_number, category, created_at
		FROM questions
		WHERE product_id = $1
		ORDER BY step_number ASC`,
		productID,
	)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list questions", err)
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		var persistedType string
		if err := rows.Scan(&q.ID, &q.ProductID, &q.Text, &persistedType, &q.StepNumber, &q.Category, &q.CreatedAt); err != nil {
			return nil, apperrors.NewPersistenceError("scan question", err)
		}
		q.Origin = originFromPersisted(persistedType)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list questions", err)
	}

	return out, nil
}

// originFromPersisted maps the stored question_type back onto an origin. The
// stored enum folds both AI tiers into ai_generated.
func originFromPersisted(persistedType string) models.QuestionOrigin {
	if persistedType == "fallback" {
		return models.OriginFallback
	}
	return models.OriginPrimary
}
