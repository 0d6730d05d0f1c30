// Package normalize converts freeform upstream text and dates into canonical values.
// All functions are pure and never fail, an unusable input yields an empty result.
package normalize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	tagRe = regexp.MustCompile(`<[^>]+>`)
	urlRe = regexp.MustCompile(`https?://[^\s<>"'()\[\]{}|\\^` + "`" + `]+`)

	quotesReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "«", `"`, "»", `"`,
		"‘", "'", "’", "'", "‚", "'",
	)

	strictPolicy = bluemonday.StrictPolicy()
)

// CleanText removes tag-shaped fragments, straightens curly quotes, collapses whitespace runs and trims the result.
// CleanText(CleanText(s)) == CleanText(s) for any s.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}
	s := tagRe.ReplaceAllString(raw, "")
	s = quotesReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeHTML drops all markup from an HTML fragment, decodes entities and cleans the remaining text
func SanitizeHTML(raw string) string {
	if raw == "" {
		return ""
	}
	return CleanText(html.UnescapeString(strictPolicy.Sanitize(raw)))
}

// ExtractURLs returns all http(s) URLs found in text in order of occurrence, repeated ones included
func ExtractURLs(text string) []string {
	matches := urlRe.FindAllString(text, -1)
	res := make([]string, 0, len(matches))
	for _, m := range matches {
		if m = strings.TrimRight(m, ".,;:!?"); m != "" {
			res = append(res, m)
		}
	}
	return res
}

// SplitTopics converts topics given as a comma-delimited string or as a list into an ordered slice.
// Whitespace around each topic is stripped, empty entries are dropped, duplicates are kept.
func SplitTopics(v any) []string {
	res := []string{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}

	switch t := v.(type) {
	case string:
		for _, s := range strings.Split(t, ",") {
			add(s)
		}
	case []string:
		for _, s := range t {
			add(s)
		}
	case []any:
		for _, s := range t {
			if str, ok := s.(string); ok {
				add(str)
			}
		}
	}
	return res
}
