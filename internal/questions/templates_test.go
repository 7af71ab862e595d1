// internal/questions/templates_test.go
package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transparency-service/internal/models"
)

func TestTemplateQuestions(t *testing.T) {
	tests := []struct {
		name          string
		category      models.Category
		wantFirst     string
		wantBaselined bool
	}{
		{
			name:      "food and beverage",
			category:  models.CategoryFoodBeverage,
			wantFirst: "What are the main ingredients used in this product?",
		},
		{
			name:      "fashion and apparel",
			category:  models.CategoryFashionApparel,
			wantFirst: "What materials and fabrics are used in this product?",
		},
		{
			name:      "health and wellness",
			category:  models.CategoryHealthWellness,
			wantFirst: "What are the active ingredients and their benefits?",
		},
		{
			name:      "electronics",
			category:  models.CategoryElectronics,
			wantFirst: "What are the technical specifications and capabilities?",
		},
		{
			name:      "home and living",
			category:  models.CategoryHomeLiving,
			wantFirst: "What materials are used in construction and finish?",
		},
		{
			name:          "other falls back to baseline",
			category:      models.CategoryOther,
			wantBaselined: true,
		},
		{
			name:          "unknown category falls back to baseline",
			category:      models.Category("made-up"),
			wantBaselined: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TemplateQuestions(tt.category)
			require.Len(t, got, 5)

			if tt.wantBaselined {
				assert.Equal(t, TemplateQuestions(BaselineCategory), got)
				return
			}
			assert.Equal(t, tt.wantFirst, got[0])
		})
	}
}

func TestTemplateQuestionsReturnsCopy(t *testing.T) {
	first := TemplateQuestions(models.CategoryElectronics)
	first[0] = "mutated"

	second := TemplateQuestions(models.CategoryElectronics)
	assert.Equal(t, "What are the technical specifications and capabilities?", second[0])
}

func TestFallbackProviderNeverFails(t *testing.T) {
	provider := NewFallbackProvider()

	assert.Equal(t, "fallback", provider.Name())
	assert.Equal(t, models.OriginFallback, provider.Origin())

	for _, category := range models.Categories {
		texts, err := provider.Attempt(context.Background(), models.ProductInfo{Category: category})
		require.NoError(t, err)
		assert.Len(t, texts, 5)
	}
}
