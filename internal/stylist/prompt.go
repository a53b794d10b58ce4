package stylist

import (
	"fmt"
	"strings"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// systemPrompt pins the assistant to a strict JSON contract so the
// response survives ParseSuggestion.
const systemPrompt = `You are a personal stylist. You will receive a wardrobe catalog and a request.
Pick one outfit using ONLY item ids from the catalog.
Respond with a single JSON object and nothing else:
{"name": "<short outfit name>", "occasion": "<occasion>", "itemIds": ["<id>", ...], "rationale": "<one or two sentences>"}`

// SystemPrompt returns the system message for outfit suggestions.
func SystemPrompt() string {
	return systemPrompt
}

// BuildOutfitPrompt renders the user message: a compact one-line-per-item
// catalog plus the request. Archived items should be excluded by the
// caller before building the prompt.
func BuildOutfitPrompt(items []*domain.ClothingItem, occasion string, weatherLabels []string) string {
	var b strings.Builder

	b.WriteString("Wardrobe catalog:\n")
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item.ID)
		b.WriteString(": ")
		b.WriteString(item.Name)
		fmt.Fprintf(&b, " (%s", item.Category)
		if item.Color != "" {
			b.WriteString(", ")
			b.WriteString(item.Color)
		}
		if item.Material != "" {
			b.WriteString(", ")
			b.WriteString(item.Material)
		}
		if len(item.WeatherCompatibility) > 0 {
			b.WriteString(", weather: ")
			b.WriteString(strings.Join(item.WeatherCompatibility, "/"))
		}
		if tags := item.AllTags(); len(tags) > 0 {
			b.WriteString(", tags: ")
			b.WriteString(strings.Join(tags, "/"))
		}
		b.WriteString(")\n")
	}

	b.WriteString("\nRequest: suggest one outfit")
	if occasion != "" {
		fmt.Fprintf(&b, " for %q", occasion)
	}
	if len(weatherLabels) > 0 {
		fmt.Fprintf(&b, ". Current weather: %s", strings.Join(weatherLabels, ", "))
	}
	b.WriteString(".")

	return b.String()
}
