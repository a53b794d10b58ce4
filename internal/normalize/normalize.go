// Package normalize provides utilities for normalizing and sanitizing
// wardrobe data coming from clients and import files.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches any non-alphanumeric character.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Matches multiple hyphens.
	multipleHyphens = regexp.MustCompile(`-+`)
)

// colorFamilies maps common shade names to a small canonical palette so
// filtering by "navy" and "blue" lands in the same bucket.
//
//nolint:gochecknoglobals // Static lookup table for color normalization
var colorFamilies = map[string]string{
	"navy": "blue", "navy blue": "blue", "teal": "blue", "turquoise": "blue",
	"cobalt": "blue", "sky blue": "blue", "denim": "blue", "azure": "blue",
	"crimson": "red", "scarlet": "red", "maroon": "red", "burgundy": "red",
	"wine": "red", "cherry": "red",
	"charcoal": "gray", "grey": "gray", "slate": "gray", "silver": "gray",
	"graphite": "gray",
	"ivory": "white", "cream": "white", "off-white": "white", "off white": "white",
	"eggshell": "white",
	"tan": "brown", "beige": "brown", "khaki": "brown", "camel": "brown",
	"chocolate": "brown", "taupe": "brown", "coffee": "brown",
	"lime": "green", "olive": "green", "emerald": "green", "mint": "green",
	"forest green": "green", "sage": "green",
	"gold": "yellow", "mustard": "yellow", "lemon": "yellow",
	"lavender": "purple", "violet": "purple", "plum": "purple", "lilac": "purple",
	"magenta": "pink", "fuchsia": "pink", "rose": "pink", "blush": "pink",
	"salmon": "pink", "coral": "pink",
	"rust": "orange", "amber": "orange", "peach": "orange", "tangerine": "orange",
	"jet black": "black", "ebony": "black", "onyx": "black",
}

// Slugify converts a string to a URL-safe slug.
// "Business Casual" -> "business-casual".
// "Après-Ski" -> "apres-ski".
// "Gym/Workout" -> "gym-workout".
func Slugify(s string) string {
	// Normalize unicode (decompose accented characters).
	s = norm.NFKD.String(s)

	// Remove non-ASCII characters.
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	// Lowercase.
	s = strings.ToLower(s)

	// Replace non-alphanumeric with hyphens.
	s = nonAlphanumeric.ReplaceAllString(s, "-")

	// Collapse multiple hyphens.
	s = multipleHyphens.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	return s
}

// Tags sanitizes a raw tag list: trims whitespace, drops empties, and
// removes duplicates case-insensitively while preserving first-seen
// casing and order. Tags keep their display form; use Slugify when a
// URL-safe key is needed.
func Tags(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(SanitizeString(t))
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Color returns a cleaned, lowercase color string.
// "  Navy Blue " -> "navy blue". Returns empty for blank input.
func Color(raw string) string {
	return strings.ToLower(strings.TrimSpace(SanitizeString(raw)))
}

// ColorFamily reduces a color to one of a small canonical palette for
// faceting and filtering. Unknown colors pass through cleaned, so
// "heather gray" still groups with itself.
func ColorFamily(raw string) string {
	c := Color(raw)
	if c == "" {
		return ""
	}
	if family, ok := colorFamilies[c]; ok {
		return family
	}
	return c
}

// SanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing. Some import sources include
// null terminators in strings.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
