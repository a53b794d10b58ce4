package stylist

import (
	"encoding/json/v2"
	"strings"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

// Suggestion is a parsed, validated outfit suggestion.
type Suggestion struct {
	Name      string   `json:"name"`
	Occasion  string   `json:"occasion"`
	ItemIDs   []string `json:"itemIds"`
	Rationale string   `json:"rationale"`
}

// rawSuggestion uses pointers so missing fields are distinguishable
// from empty ones.
type rawSuggestion struct {
	Name      *string   `json:"name"`
	Occasion  *string   `json:"occasion"`
	ItemIDs   *[]string `json:"itemIds"`
	Rationale *string   `json:"rationale"`
}

// ParseSuggestion parses an assistant reply into a Suggestion.
// Models wrap JSON in markdown fences often enough that we strip them
// first. Every field must be present, and every item id must exist in
// knownIDs.
func ParseSuggestion(reply string, knownIDs map[string]bool) (*Suggestion, error) {
	payload := extractJSON(reply)
	if payload == "" {
		return nil, errors.Upstream("stylist reply contained no JSON object")
	}

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, errors.Upstream("stylist reply was not valid JSON").WithCause(err)
	}

	switch {
	case raw.Name == nil || *raw.Name == "":
		return nil, errors.Upstream("stylist reply missing outfit name")
	case raw.Occasion == nil:
		return nil, errors.Upstream("stylist reply missing occasion")
	case raw.ItemIDs == nil || len(*raw.ItemIDs) == 0:
		return nil, errors.Upstream("stylist reply missing item ids")
	case raw.Rationale == nil:
		return nil, errors.Upstream("stylist reply missing rationale")
	}

	for _, id := range *raw.ItemIDs {
		if !knownIDs[id] {
			return nil, errors.Upstream("stylist referenced unknown item " + id)
		}
	}

	return &Suggestion{
		Name:      *raw.Name,
		Occasion:  *raw.Occasion,
		ItemIDs:   *raw.ItemIDs,
		Rationale: *raw.Rationale,
	}, nil
}

// extractJSON returns the JSON object embedded in a reply, stripping
// markdown code fences and any surrounding prose.
func extractJSON(reply string) string {
	s := strings.TrimSpace(reply)

	// Strip ```json ... ``` or ``` ... ``` fences.
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	// Fall back to the outermost braces when prose surrounds the object.
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
