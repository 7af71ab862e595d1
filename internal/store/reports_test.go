// internal/store/reports_test.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/models"
)

func sampleRecord(reportID string, generatedAt time.Time) models.ReportRecord {
	return models.ReportRecord{
		ReportID: reportID,
		Product: models.ProductSnapshot{
			Name:      "Organic Green Tea",
			Brand:     "Pure Leaf Co",
			Category:  models.CategoryFoodBeverage,
			CreatedAt: generatedAt,
		},
		Entries: []models.ReportEntry{
			{Question: "Where?", Response: "Japan", StepNumber: 1},
			{Question: "What?", Response: models.NoResponsePlaceholder, StepNumber: 2},
		},
		GeneratedAt: generatedAt,
	}
}

func TestReportStoreInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	record := sampleRecord("r-1", now)
	report := &models.Report{
		ID:           "r-1",
		ProductID:    "p-1",
		UserID:       "u-1",
		SubmissionID: "s-1",
		Record:       record,
		Status:       models.ReportStatusCompleted,
		CreatedAt:    now,
		CompletedAt:  &now,
	}

	recordJSON, err := json.Marshal(record)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO reports").
		WithArgs("r-1", "p-1", "u-1", "s-1", recordJSON, models.ReportStatusCompleted, now, &now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewReportStore(db)
	require.NoError(t, store.Insert(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStoreGetOwned(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	record := sampleRecord("r-1", now)
	recordJSON, err := json.Marshal(record)
	require.NoError(t, err)

	t.Run("round-trips the record payload", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "product_id", "user_id", "submission_id", "report_data", "status", "created_at", "completed_at"}).
			AddRow("r-1", "p-1", "u-1", "s-1", recordJSON, "completed", now, now)

		mock.ExpectQuery("SELECT id, product_id, user_id, submission_id, report_data").
			WithArgs("r-1", "u-1").
			WillReturnRows(rows)

		store := NewReportStore(db)
		got, err := store.GetOwned(context.Background(), "r-1", "u-1")
		require.NoError(t, err)

		assert.Equal(t, record, got.Record)
		assert.Equal(t, models.ReportStatusCompleted, got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown report maps to not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, product_id, user_id, submission_id, report_data").
			WithArgs("missing", "u-1").
			WillReturnError(sql.ErrNoRows)

		store := NewReportStore(db)
		_, err = store.GetOwned(context.Background(), "missing", "u-1")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductStoreGetOwned(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns the owned product", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "user_id", "product_name", "brand_name", "category", "description", "status", "created_at", "updated_at"}).
			AddRow("p-1", "u-1", "Organic Green Tea", "Pure Leaf Co", "food-beverage", "Premium loose leaf", "submitted", now, now)

		mock.ExpectQuery("SELECT id, user_id, product_name, brand_name, category").
			WithArgs("p-1", "u-1").
			WillReturnRows(rows)

		store := NewProductStore(db)
		got, err := store.GetOwned(context.Background(), "p-1", "u-1")
		require.NoError(t, err)

		assert.Equal(t, "Organic Green Tea", got.ProductName)
		assert.Equal(t, models.CategoryFoodBeverage, got.Category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong owner looks like a missing product", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, user_id, product_name, brand_name, category").
			WithArgs("p-1", "intruder").
			WillReturnError(sql.ErrNoRows)

		store := NewProductStore(db)
		_, err = store.GetOwned(context.Background(), "p-1", "intruder")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResponseStoreListForSubmission(t *testing.T) {
	now := time.Now().UTC()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "question_id", "product_id", "user_id", "response_text", "submission_id", "created_at"}).
		AddRow("resp-1", "q-1", "p-1", "u-1", "Japan", "s-1", now)

	mock.ExpectQuery("SELECT id, question_id, product_id, user_id, response_text").
		WithArgs("p-1", "u-1", "s-1").
		WillReturnRows(rows)

	store := NewResponseStore(db)
	got, err := store.ListForSubmission(context.Background(), "p-1", "u-1", "s-1")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "q-1", got[0].QuestionID)
	assert.Equal(t, "Japan", got[0].ResponseText)
	assert.NoError(t, mock.ExpectationsWereMet())
}
