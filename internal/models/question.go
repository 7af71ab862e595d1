// internal/models/question.go
package models

import "time"

// QuestionOrigin identifies which generation tier produced a question.
type QuestionOrigin string

const (
	OriginPrimary   QuestionOrigin = "primary_generated"
	OriginSecondary QuestionOrigin = "secondary_generated"
	OriginFallback  QuestionOrigin = "fallback"
)

// PersistedType maps the origin onto the stored question_type enum, which
// does not distinguish the two AI tiers.
func (o QuestionOrigin) PersistedType() string {
	if o == OriginFallback {
		return "fallback"
	}
	return "ai_generated"
}

// Question is a single generated transparency question. Created only by the
// question orchestrator and never mutated afterwards.
type Question struct {
	ID         string         `json:"id"`
	ProductID  string         `json:"productId"`
	Text       string         `json:"text"`
	Origin     QuestionOrigin `json:"origin"`
	StepNumber int            `json:"step"`
	Category   Category       `json:"category"`
	CreatedAt  time.Time      `json:"createdAt"`
}
