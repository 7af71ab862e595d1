// internal/questions/templates.go
package questions

import "transparency-service/internal/models"

// BaselineCategory is the template set used when a category has no entry of
// its own (including the catch-all "other" category).
const BaselineCategory = models.CategoryFoodBeverage

// fallbackTemplates maps each category to its five canned transparency
// questions. Initialized once at startup and never mutated.
var fallbackTemplates = map[models.Category][]string{
	models.CategoryFoodBeverage: {
		"What are the main ingredients used in this product?",
		"Are there any allergens or dietary restrictions consumers should know about?",
		"How is this product packaged and what materials are used?",
		"What is the nutritional value and health benefits of this product?",
		"How does this product compare to conventional alternatives?",
	},
	models.CategoryFashionApparel: {
		"What materials and fabrics are used in this product?",
		"Where and how is this product manufactured?",
		"What are the care instructions and expected lifespan?",
		"Are there any ethical or sustainable practices in production?",
		"What sizes and fit information should consumers know?",
	},
	models.CategoryHealthWellness: {
		"What are the active ingredients and their benefits?",
		"Are there any side effects or contraindications?",
		"How should this product be used for best results?",
		"What certifications or testing has this product undergone?",
		"Is this product suitable for all age groups?",
	},
	models.CategoryElectronics: {
		"What are the technical specifications and capabilities?",
		"What is the expected battery life and charging requirements?",
		"What warranty and support options are available?",
		"What are the environmental considerations for disposal?",
		"What accessories or additional items are needed?",
	},
	models.CategoryHomeLiving: {
		"What materials are used in construction and finish?",
		"What are the care and maintenance requirements?",
		"What are the dimensions and space requirements?",
		"What safety considerations should users be aware of?",
		"What is the expected durability and lifespan?",
	},
}

// TemplateQuestions returns the canned question list for a category, falling
// back to the baseline set for unknown categories. The returned slice is a
// copy; callers may not reach the table itself.
func TemplateQuestions(category models.Category) []string {
	selected, ok := fallbackTemplates[category]
	if !ok {
		selected = fallbackTemplates[BaselineCategory]
	}
	out := make([]string, len(selected))
	copy(out, selected)
	return out
}
