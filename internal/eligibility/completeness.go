// internal/eligibility/completeness.go
package eligibility

import (
	"strings"

	"loan-workers/internal/models"
)

type CompletenessResult struct {
	AllPresent bool
	Missing    []models.DocumentType
}

// Reason joins the missing type names, e.g. "pan, income_proof".
func (c CompletenessResult) Reason() string {
	names := make([]string, len(c.Missing))
	for i, t := range c.Missing {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

// CheckCompleteness reports which of the required types have no document.
// Missing follows the order of required, not the order of docs.
func CheckCompleteness(docs []models.Document, required []models.DocumentType) CompletenessResult {
	present := make(map[models.DocumentType]bool, len(docs))
	for _, d := range docs {
		present[d.DocumentType] = true
	}

	missing := []models.DocumentType{}
	for _, t := range required {
		if !present[t] {
			missing = append(missing, t)
		}
	}

	return CompletenessResult{
		AllPresent: len(missing) == 0,
		Missing:    missing,
	}
}
