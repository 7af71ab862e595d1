// internal/questions/freetext.go
package questions

import (
	"regexp"
	"strings"
)

// enumerationMarkers matches leading bullets, numbering and list punctuation
// such as "- ", "* ", "3. ", "1) " or "• ".
var enumerationMarkers = regexp.MustCompile(`^[\s\-*•\d.)(]+`)

// ParseCandidateQuestions extracts question candidates from free-form model
// output. Each line is stripped of enumeration markers and trimmed, empty
// lines are discarded, and the result is truncated to max entries.
func ParseCandidateQuestions(text string, max int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		cleaned := strings.TrimSpace(enumerationMarkers.ReplaceAllString(line, ""))
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
		if len(out) == max {
			break
		}
	}
	return out
}
