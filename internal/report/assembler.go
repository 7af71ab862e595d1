// internal/report/assembler.go
package report

import (
	"context"
	"time"

	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/metrics"
	"transparency-service/internal/models"
	"transparency-service/internal/store"

	"github.com/google/uuid"
)

// Read/write contracts against the stores, narrowed to what assembly needs.
type ProductReader interface {
	GetOwned(ctx context.Context, productID, userID string) (*models.Product, error)
}

type QuestionReader interface {
	ListByProduct(ctx context.Context, productID string) ([]models.Question, error)
}

type ResponseReader interface {
	ListForSubmission(ctx context.Context, productID, userID, submissionID string) ([]models.Response, error)
}

type ReportReadWriter interface {
	Insert(ctx context.Context, report *models.Report) error
	GetOwned(ctx context.Context, reportID, userID string) (*models.Report, error)
}

// Assembler joins a product's questions with one submission's responses into
// a canonical report record and persists it.
type Assembler struct {
	products  ProductReader
	questions QuestionReader
	responses ResponseReader
	reports   ReportReadWriter
	cache     *store.ReportCache
	logger    logger.Logger
}

// NewAssembler wires the assembler. cache may be nil, in which case all
// record reads go to the report store.
func NewAssembler(products ProductReader, questions QuestionReader, responses ResponseReader, reports ReportReadWriter, cache *store.ReportCache, log logger.Logger) *Assembler {
	return &Assembler{
		products:  products,
		questions: questions,
		responses: responses,
		reports:   reports,
		cache:     cache,
		logger:    log.WithFields(map[string]interface{}{"component": "report-assembler"}),
	}
}

// Assemble builds and persists the report for one (product, submission) pair.
// The record carries one entry per question in ascending step order;
// unanswered questions get the placeholder text.
func (a *Assembler) Assemble(ctx context.Context, productID, submissionID, userID string) (*models.ReportRecord, error) {
	product, err := a.products.GetOwned(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	questionList, err := a.questions.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responseList, err := a.responses.ListForSubmission(ctx, productID, userID, submissionID)
	if err != nil {
		return nil, err
	}

	responseByQuestion := make(map[string]string, len(responseList))
	for _, r := range responseList {
		responseByQuestion[r.QuestionID] = r.ResponseText
	}

	entries := make([]models.ReportEntry, 0, len(questionList))
	for _, q := range questionList {
		answer, ok := responseByQuestion[q.ID]
		if !ok {
			answer = models.NoResponsePlaceholder
		}
		entries = append(entries, models.ReportEntry{
			Question:   q.Text,
			Response:   answer,
			StepNumber: q.StepNumber,
		})
	}

	now := time.Now().UTC()
	record := models.ReportRecord{
		ReportID: uuid.New().String(),
		Product: models.ProductSnapshot{
			Name:        product.ProductName,
			Brand:       product.BrandName,
			Category:    product.Category,
			Description: product.Description,
			CreatedAt:   product.CreatedAt,
		},
		Entries:     entries,
		GeneratedAt: now,
	}

	persisted := &models.Report{
		ID:           record.ReportID,
		ProductID:    productID,
		UserID:       userID,
		SubmissionID: submissionID,
		Record:       record,
		Status:       models.ReportStatusCompleted,
		CreatedAt:    now,
		CompletedAt:  &now,
	}

	if err := a.reports.Insert(ctx, persisted); err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(ctx, &record)
	}

	metrics.ReportsGenerated.Inc()
	a.logger.Info("report assembled", map[string]interface{}{
		"reportId":     record.ReportID,
		"productId":    productID,
		"submissionId": submissionID,
		"entryCount":   len(entries),
	})

	return &record, nil
}

// LoadRecord fetches a previously assembled record for rendering, consulting
// the cache first.
func (a *Assembler) LoadRecord(ctx context.Context, reportID, userID string) (*models.ReportRecord, error) {
	if a.cache != nil {
		if record, ok := a.cache.Get(ctx, reportID); ok {
			return record, nil
		}
	}

	persisted, err := a.reports.GetOwned(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(ctx, &persisted.Record)
	}

	return &persisted.Record, nil
}
