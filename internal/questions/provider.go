// internal/questions/provider.go
package questions

import (
	"context"

	"transparency-service/internal/models"
)

// Provider is one generation tier. Attempt returns the raw question texts in
// emission order, or a tier failure (UPSTREAM_UNAVAILABLE or
// MALFORMED_UPSTREAM_RESPONSE) that the orchestrator recovers from by moving
// to the next tier.
type Provider interface {
	Name() string
	Origin() models.QuestionOrigin
	Attempt(ctx context.Context, info models.ProductInfo) ([]string, error)
}
