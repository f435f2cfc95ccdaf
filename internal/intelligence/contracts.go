package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/llm"
)

// Payload is the structured reply of the parse task. It is also the format
// accepted from files, so the pipeline runs without a model.
type Payload struct {
	Entries      []domain.RawParsedEntry `json:"entries"`
	ProgressHint *domain.ProgressHint    `json:"progress_hint"`
}

// ParseContext is what the parser tells the model about the user's world.
type ParseContext struct {
	Today        string // YYYY-MM-DD in the user's timezone
	Timezone     string
	ProjectNames []string
}

// DecodePayload reads a payload from JSON bytes. A bare array of entries is
// accepted as a payload with no progress hint.
func DecodePayload(data []byte) (*Payload, error) {
	return decodePayload(string(data))
}

func decodePayload(raw string) (*Payload, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") {
		entries, err := llm.ExtractJSON(trimmed, validateEntries)
		if err != nil {
			return nil, err
		}
		return &Payload{Entries: entries}, nil
	}
	p, err := llm.ExtractJSON(raw, validatePayload)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func validatePayload(p Payload) error {
	if p.Entries == nil {
		return fmt.Errorf("entries is required")
	}
	if err := validateEntries(p.Entries); err != nil {
		return err
	}
	if h := p.ProgressHint; h != nil && h.SuggestedProgress != nil {
		if v := *h.SuggestedProgress; v < 0 || v > 100 {
			return fmt.Errorf("progress_hint.suggested_progress must be in [0,100], got %d", v)
		}
	}
	return nil
}

// validateEntries rejects unknown enum values. A null duration with
// duration_source=explicit is representable and left to the normalizer.
func validateEntries(entries []domain.RawParsedEntry) error {
	for i, e := range entries {
		if !domain.ValidDurationSources[e.DurationSource] {
			return fmt.Errorf("entries[%d]: unknown duration_source %q", i, e.DurationSource)
		}
		if !domain.ValidCategories[e.Category] {
			return fmt.Errorf("entries[%d]: unknown category %q", i, e.Category)
		}
		if !domain.ValidIntents[e.Intent] {
			return fmt.Errorf("entries[%d]: unknown intent %q", i, e.Intent)
		}
		if e.DurationMinutes != nil && *e.DurationMinutes < 0 {
			return fmt.Errorf("entries[%d]: duration_minutes must be >= 0, got %d", i, *e.DurationMinutes)
		}
	}
	return nil
}
