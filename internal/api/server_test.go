// internal/api/server_test.go
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transparency-service/internal/common/logger"
	"transparency-service/internal/models"
	"transparency-service/internal/questions"
	"transparency-service/internal/report"
	"transparency-service/internal/store"
)

func newTestServer(t *testing.T, db *sql.DB, primaryURL string) *Server {
	t.Helper()

	log := logger.NewTestLogger(t)
	productStore := store.NewProductStore(db)
	questionStore := store.NewQuestionStore(db)
	responseStore := store.NewResponseStore(db)
	reportStore := store.NewReportStore(db)

	orchestrator := questions.NewOrchestrator(questionStore, log,
		questions.NewPrimaryClient(primaryURL, time.Second, log),
		questions.NewFallbackProvider(),
	)
	assembler := report.NewAssembler(productStore, questionStore, responseStore, reportStore, nil, log)
	renderer := report.NewRenderer("ClearChoice Insight", log)

	return NewServer(productStore, orchestrator, assembler, renderer, nil, log)
}

func productRow(mock sqlmock.Sqlmock, productID, userID string) {
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "product_name", "brand_name", "category", "description", "status", "created_at", "updated_at"}).
		AddRow(productID, userID, "Organic Green Tea", "Pure Leaf Co", "food-beverage", "Premium loose leaf", "submitted", now, now)
	mock.ExpectQuery("SELECT id, user_id, product_name, brand_name, category").
		WithArgs(productID, userID).
		WillReturnRows(rows)
}

func TestHealthEndpoint(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	server := newTestServer(t, db, "http://localhost:0")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
}

func TestMissingIdentityIsRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	server := newTestServer(t, db, "http://localhost:0")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/questions/generate"},
		{http.MethodPost, "/api/reports/generate"},
		{http.MethodGet, "/api/reports/r-1"},
		{http.MethodGet, "/api/reports/r-1/pdf"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, strings.NewReader("{}")))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGenerateQuestionsValidation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	server := newTestServer(t, db, "http://localhost:0")

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"missing product info", `{"productId": "p-1"}`},
		{"blank product name", `{"productId": "p-1", "productInfo": {"productName": "", "brandName": "B", "category": "food-beverage"}}`},
		{"not json", `this is not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/questions/generate", strings.NewReader(tt.body))
			req.Header.Set("X-User-ID", "u-1")
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
		})
	}
}

func TestGenerateQuestionsPrimarySuccess(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"questions": ["Where is it grown?", "Is it organic?"]}`))
	}))
	defer upstream.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	productRow(mock, "p-1", "u-1")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO questions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO questions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	server := newTestServer(t, db, upstream.URL)
	req := httptest.NewRequest(http.MethodPost, "/api/questions/generate",
		strings.NewReader(`{"productId": "p-1", "productInfo": {"productName": "Organic Green Tea", "brandName": "Pure Leaf Co", "category": "food-beverage", "description": "Premium loose leaf"}}`))
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ProductID string `json:"productId"`
			Questions []struct {
				Text string `json:"text"`
				Type string `json:"type"`
				Step int    `json:"step"`
			} `json:"questions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.True(t, payload.Success)
	assert.Contains(t, payload.Message, "primary_generated")
	require.Len(t, payload.Data.Questions, 2)
	assert.Equal(t, "Where is it grown?", payload.Data.Questions[0].Text)
	assert.Equal(t, "ai_generated", payload.Data.Questions[0].Type)
	assert.Equal(t, 1, payload.Data.Questions[0].Step)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateQuestionsFallsBackWhenUpstreamsDown(t *testing.T) {
	// Nothing listens on the primary URL and no secondary is configured,
	// so generation must land on the canned template tier.
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	productRow(mock, "p-1", "u-1")
	mock.ExpectBegin()
	for i := 0; i < 5; i++ {
		mock.ExpectExec("INSERT INTO questions").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	server := newTestServer(t, db, upstream.URL)
	req := httptest.NewRequest(http.MethodPost, "/api/questions/generate",
		strings.NewReader(`{"productId": "p-1", "productInfo": {"productName": "Organic Green Tea", "brandName": "Pure Leaf Co", "category": "food-beverage"}}`))
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Message string `json:"message"`
		Data    struct {
			Questions []struct {
				Text string `json:"text"`
				Type string `json:"type"`
			} `json:"questions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Contains(t, payload.Message, "fallback")
	require.Len(t, payload.Data.Questions, 5)
	assert.Equal(t, "What are the main ingredients used in this product?", payload.Data.Questions[0].Text)
	for _, q := range payload.Data.Questions {
		assert.Equal(t, "fallback", q.Type)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateQuestionsUnknownProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, product_name, brand_name, category").
		WithArgs("p-404", "u-1").
		WillReturnError(sql.ErrNoRows)

	server := newTestServer(t, db, "http://localhost:0")
	req := httptest.NewRequest(http.MethodPost, "/api/questions/generate",
		strings.NewReader(`{"productId": "p-404", "productInfo": {"productName": "X", "brandName": "Y", "category": "other"}}`))
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReportNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, product_id, user_id, submission_id, report_data").
		WithArgs("missing", "u-1").
		WillReturnError(sql.ErrNoRows)

	server := newTestServer(t, db, "http://localhost:0")
	req := httptest.NewRequest(http.MethodGet, "/api/reports/missing/pdf", nil)
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// No document bytes may leak on a failed lookup.
	assert.NotEqual(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPDFDownload(t *testing.T) {
	record := models.ReportRecord{
		ReportID: "r-1",
		Product: models.ProductSnapshot{
			Name:     "Organic Green Tea",
			Brand:    "Pure Leaf Co",
			Category: models.CategoryFoodBeverage,
		},
		Entries: []models.ReportEntry{
			{Question: "Where is it grown?", Response: "Shizuoka, Japan", StepNumber: 1},
		},
		GeneratedAt: time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
	}
	recordJSON, err := json.Marshal(record)
	require.NoError(t, err)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "product_id", "user_id", "submission_id", "report_data", "status", "created_at", "completed_at"}).
		AddRow("r-1", "p-1", "u-1", "s-1", recordJSON, "completed", now, now)
	mock.ExpectQuery("SELECT id, product_id, user_id, submission_id, report_data").
		WithArgs("r-1", "u-1").
		WillReturnRows(rows)

	server := newTestServer(t, db, "http://localhost:0")
	req := httptest.NewRequest(http.MethodGet, "/api/reports/r-1/pdf", nil)
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transparency-report-r-1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	productRow(mock, "p-1", "u-1")
	mock.ExpectQuery("SELECT id, product_id, question_text, question_type").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "question_text", "question_type", "step_number", "category", "created_at"}).
			AddRow("q-1", "p-1", "Where is it grown?", "ai_generated", 1, "food-beverage", now))
	mock.ExpectQuery("SELECT id, question_id, product_id, user_id, response_text").
		WithArgs("p-1", "u-1", "s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "product_id", "user_id", "response_text", "submission_id", "created_at"}).
			AddRow("resp-1", "q-1", "p-1", "u-1", "Shizuoka, Japan", "s-1", now))
	mock.ExpectExec("INSERT INTO reports").WillReturnResult(sqlmock.NewResult(0, 1))

	server := newTestServer(t, db, "http://localhost:0")
	req := httptest.NewRequest(http.MethodPost, "/api/reports/generate",
		strings.NewReader(`{"productId": "p-1", "submissionId": "s-1"}`))
	req.Header.Set("X-User-ID", "u-1")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			ReportID   string              `json:"reportId"`
			ReportData models.ReportRecord `json:"reportData"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.True(t, payload.Success)
	assert.NotEmpty(t, payload.Data.ReportID)
	assert.Equal(t, payload.Data.ReportID, payload.Data.ReportData.ReportID)
	require.Len(t, payload.Data.ReportData.Entries, 1)
	assert.Equal(t, "Shizuoka, Japan", payload.Data.ReportData.Entries[0].Response)
	assert.NoError(t, mock.ExpectationsWereMet())
}
