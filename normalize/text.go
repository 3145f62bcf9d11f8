package normalize

import (
	"regexp"
	"strings"

	"product-extractor/internal/types"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// Keep word characters, whitespace, hyphen, apostrophe, ampersand
	// and Latin accented letters; strip everything else (markup
	// remnants, control characters, emoji).
	titleDisallowed = regexp.MustCompile(`[^\w\s\-'&À-ÿ]`)

	scriptBlocks = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleBlocks  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
)

// CleanTitle collapses whitespace, strips markup and control characters
// and truncates to MaxTitleLength.
func CleanTitle(title string) string {
	s := titleDisallowed.ReplaceAllString(title, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return truncate(strings.TrimSpace(s), types.MaxTitleLength)
}

// CleanDescription removes script and style blocks (content included),
// collapses whitespace and truncates to MaxDescriptionLength.
//
// This is a sanitization floor, not an HTML sanitizer: it is adequate
// only because downstream rendering re-escapes text. It must not be
// relied on as an XSS defense if descriptions are ever rendered raw.
func CleanDescription(html string) string {
	s := scriptBlocks.ReplaceAllString(html, "")
	s = styleBlocks.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return truncate(strings.TrimSpace(s), types.MaxDescriptionLength)
}

// truncate caps a string at n runes without splitting a rune.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
