// internal/questions/orchestrator.go
package questions

import (
	"context"
	"fmt"
	"time"

	apperrors "transparency-service/internal/common/errors"
	"transparency-service/internal/common/logger"
	"transparency-service/internal/common/metrics"
	"transparency-service/internal/models"

	"github.com/google/uuid"
)

// Store is the persistence contract the orchestrator needs: one atomic batch
// insert per generated question set.
type Store interface {
	InsertBatch(ctx context.Context, batch []models.Question) error
}

// Orchestrator drives the tiered generation sequence. Providers are attempted
// strictly in order; the first success wins and later tiers are never tried.
// Tier failures are logged and swallowed, so with the fallback provider last
// the only caller-visible failure is a persistence failure.
type Orchestrator struct {
	providers []Provider
	store     Store
	logger    logger.Logger
}

func NewOrchestrator(store Store, log logger.Logger, providers ...Provider) *Orchestrator {
	return &Orchestrator{
		providers: providers,
		store:     store,
		logger:    log.WithFields(map[string]interface{}{"component": "question-orchestrator"}),
	}
}

// Generate produces the ordered question list for a product, persists it as a
// unit, and returns it together with the origin of the winning tier.
func (o *Orchestrator) Generate(ctx context.Context, productID string, info models.ProductInfo) ([]models.Question, models.QuestionOrigin, error) {
	var lastErr error

	for _, provider := range o.providers {
		texts, err := provider.Attempt(ctx, info)
		if err != nil {
			metrics.TierFailures.WithLabelValues(provider.Name(), string(apperrors.CodeOf(err))).Inc()
			o.logger.Warn("generation tier failed, advancing", map[string]interface{}{
				"tier":      provider.Name(),
				"productId": productID,
				"error":     err.Error(),
			})
			lastErr = err
			continue
		}

		batch := o.buildQuestions(productID, info.Category, provider.Origin(), texts)
		if err := o.store.InsertBatch(ctx, batch); err != nil {
			return nil, "", apperrors.NewPersistenceError("insert question batch", err)
		}

		metrics.QuestionsGenerated.WithLabelValues(provider.Name()).Inc()
		o.logger.Info("questions generated", map[string]interface{}{
			"tier":          provider.Name(),
			"productId":     productID,
			"questionCount": len(batch),
		})

		return batch, provider.Origin(), nil
	}

	// Unreachable when the fallback provider is registered last.
	return nil, "", fmt.Errorf("all generation tiers failed: %w", lastErr)
}

func (o *Orchestrator) buildQuestions(productID string, category models.Category, origin models.QuestionOrigin, texts []string) []models.Question {
	now := time.Now().UTC()
	batch := make([]models.Question, 0, len(texts))
	for i, text := range texts {
		batch = append(batch, models.Question{
			ID:         uuid.New().String(),
			ProductID:  productID,
			Text:       text,
			Origin:     origin,
			StepNumber: i + 1,
			Category:   category,
			CreatedAt:  now,
		})
	}
	return batch
}
