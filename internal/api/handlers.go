// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/common/validation"
	"transparency-service/internal/models"

	"github.com/go-chi/chi/v5"
)

const generateQuestionsSchema = `{
	"type": "object",
	"properties": {
		"productId": {"type": "string", "minLength": 1},
		"productInfo": {
			"type": "object",
			"properties": {
				"productName": {"type": "string", "minLength": 1},
				"brandName": {"type": "string", "minLength": 1},
				"category": {"type": "string", "minLength": 1},
				"description": {"type": "string"}
			},
			"required": ["productName", "brandName", "category"]
		}
	},
	"required": ["productId", "productInfo"]
}`

const generateReportSchema = `{
	"type": "object",
	"properties": {
		"productId": {"type": "string", "minLength": 1},
		"submissionId": {"type": "string", "minLength": 1}
	},
	"required": ["productId", "submissionId"]
}`

type generateQuestionsRequest struct {
	ProductID   string             `json:"productId"`
	ProductInfo models.ProductInfo `json:"productInfo"`
}

type generateReportRequest struct {
	ProductID    string `json:"productId"`
	SubmissionID string `json:"submissionId"`
}

func (s *Server) decodeValidated(r *http.Request, schema string, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.NewValidationError("unreadable request body")
	}

	violations, err := validation.Validate(schema, body)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if len(violations) > 0 {
		return apperrors.NewValidationError(validation.Describe(violations))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing caller identity"})
		return
	}

	var req generateQuestionsRequest
	if err := s.decodeValidated(r, generateQuestionsSchema, &req); err != nil {
		writeError(w, err)
		return
	}

	// The snapshot in the request must describe a product the caller owns.
	if _, err := s.products.GetOwned(r.Context(), req.ProductID, uid); err != nil {
		writeError(w, err)
		return
	}

	generated, origin, err := s.orchestrator.Generate(r.Context(), req.ProductID, req.ProductInfo)
	if err != nil {
		writeError(w, err)
		return
	}

	questionPayload := make([]map[string]interface{}, 0, len(generated))
	for _, q := range generated {
		questionPayload = append(questionPayload, map[string]interface{}{
			"id":   q.ID,
			"text": q.Text,
			"type": q.Origin.PersistedType(),
			"step": q.StepNumber,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Questions generated successfully (%s)", origin),
		"data": map[string]interface{}{
			"productId": req.ProductID,
			"questions": questionPayload,
		},
	})
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing caller identity"})
		return
	}

	var req generateReportRequest
	if err := s.decodeValidated(r, generateReportSchema, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := s.assembler.Assemble(r.Context(), req.ProductID, req.SubmissionID, uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Report generated successfully",
		"data": map[string]interface{}{
			"reportId":   record.ReportID,
			"reportData": record,
		},
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing caller identity"})
		return
	}

	record, err := s.assembler.LoadRecord(r.Context(), chi.URLParam(r, "reportID"), uid)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    record,
	})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing caller identity"})
		return
	}

	reportID := chi.URLParam(r, "reportID")
	record, err := s.assembler.LoadRecord(r.Context(), reportID, uid)
	if err != nil {
		writeError(w, err)
		return
	}

	document, err := s.renderer.Render(record)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transparency-report-%s.pdf"`, reportID))
	w.Header().Set("Content-Length", strconv.Itoa(len(document)))
	_, _ = w.Write(document)
}
