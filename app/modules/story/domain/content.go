// Package storydomain holds the pure content derivations applied to every
// story on save.
package storydomain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Status is a story's lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPublished, StatusArchived:
		return Status(s), nil
	default:
		return "", fmt.Errorf("invalid story status %q", s)
	}
}

// WordsPerMinute is the assumed reading speed for read time estimates.
const WordsPerMinute = 200

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL slug: lowercase, alphanumerics joined by
// single hyphens. Uniqueness is the store's problem, handled by appending a
// counter.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// UniqueSlug appends an incrementing counter to a base slug.
func UniqueSlug(base string, counter int) string {
	if counter <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, counter)
}

// WordCount counts whitespace-separated words.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadTime estimates reading minutes for the content, minimum 1 for any
// non-empty text.
func ReadTime(content string) int {
	words := WordCount(content)
	if words == 0 {
		return 0
	}
	minutes := words / WordsPerMinute
	if words%WordsPerMinute != 0 {
		minutes++
	}
	return minutes
}

// Excerpt derives a short preview from the content when the author did not
// supply one: the first maxLen runes cut at a word boundary, with an ellipsis
// when truncated.
func Excerpt(content string, maxLen int) string {
	content = strings.TrimSpace(content)
	if len([]rune(content)) <= maxLen {
		return content
	}

	runes := []rune(content)[:maxLen]
	cut := len(runes)
	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	return strings.TrimSpace(string(runes[:cut])) + "..."
}

// Rating converts like/dislike counts to a 0-5 scale. No votes means no
// rating.
func Rating(likes, dislikes int64) float64 {
	total := likes + dislikes
	if total == 0 {
		return 0
	}
	return float64(likes) / float64(total) * 5
}
