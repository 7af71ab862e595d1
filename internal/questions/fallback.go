// internal/questions/fallback.go
package questions

import (
	"context"

	"transparency-service/internal/models"
)

// FallbackProvider serves canned template questions. It is the final tier
// and cannot fail, which guarantees the orchestrator always produces a
// non-empty question list.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider { return &FallbackProvider{} }

func (p *FallbackProvider) Name() string { return "fallback" }

func (p *FallbackProvider) Origin() models.QuestionOrigin { return models.OriginFallback }

func (p *FallbackProvider) Attempt(_ context.Context, info models.ProductInfo) ([]string, error) {
	return TemplateQuestions(info.Category), nil
}
