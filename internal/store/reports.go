// internal/store/reports.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/models"
)

// ReportStore persists assembled reports with their canonical record payload
// serialized into a JSONB column.
type ReportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) *ReportStore {
	return &ReportStore{db: db}
}

// Insert writes one report row. Report identity is per (productId,
// submissionId); repeated assemblies insert new rows under new IDs.
func (s *ReportStore) Insert(ctx context.Context, report *models.Report) error {
	recordJSON, err := json.Marshal(report.Record)
	if err != nil {
		return apperrors.NewPersistenceError("marshal report record", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, product_id, user_id, submission_id, report_data, status, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		report.ID, report.ProductID, report.UserID, report.SubmissionID,
		recordJSON, report.Status, report.CreatedAt, report.CompletedAt,
	)
	if err != nil {
		return apperrors.NewPersistenceError("insert report", err)
	}
	return nil
}

// GetOwned loads a report only when it belongs to userID.
func (s *ReportStore) GetOwned(ctx context.Context, reportID, userID string) (*models.Report, error) {
	var r models.Report
	var recordJSON []byte

	err := s.db.QueryRowContext(ctx, `
		SELECT id, product_id, user_id, submission_id, report_data, status, created_at, completed_at
		FROM reports
		WHERE id = $1 AND user_id = $2`,
		reportID, userID,
	).Scan(&r.ID, &r.ProductID, &r.UserID, &r.SubmissionID, &recordJSON, &r.Status, &r.CreatedAt, &r.CompletedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Report", fmt.Sprintf("reportId: %s", reportID))
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("load report", err)
	}

	if err := json.Unmarshal(recordJSON, &r.Record); err != nil {
		return nil, apperrors.NewPersistenceError("unmarshal report record", err)
	}

	return &r, nil
}
