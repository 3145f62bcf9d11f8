package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"product-extractor/internal/types"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"whitespace collapsed", "  Nike   Air\tMax\n90  ", "Nike Air Max 90"},
		{"markup stripped", "Robe <b>d'été</b>", "Robe bd'étéb"},
		{"accents kept", "Chaussures légères été", "Chaussures légères été"},
		{"hyphen apostrophe ampersand kept", "Levi's 501 - Black & White", "Levi's 501 - Black & White"},
		{"emoji stripped", "Best Deal 🔥🔥", "Best Deal"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTitle(tt.input))
		})
	}
}

func TestCleanTitle_Truncation(t *testing.T) {
	long := strings.Repeat("a", types.MaxTitleLength+50)
	assert.Len(t, CleanTitle(long), types.MaxTitleLength)

	// Truncation counts runes, not bytes.
	accented := strings.Repeat("é", types.MaxTitleLength+50)
	assert.Equal(t, types.MaxTitleLength, len([]rune(CleanTitle(accented))))
}

func TestCleanDescription_StripsScriptAndStyle(t *testing.T) {
	html := `<p>Good shirt</p><script type="text/javascript">alert("x")</script><style>.a{color:red}</style><p>100% cotton</p>`
	got := CleanDescription(html)

	assert.NotContains(t, got, "alert")
	assert.NotContains(t, got, "color:red")
	assert.Contains(t, got, "Good shirt")
	assert.Contains(t, got, "100% cotton")
}

func TestCleanDescription_CaseInsensitiveBlocks(t *testing.T) {
	html := "before <SCRIPT>evil()</SCRIPT> after"
	got := CleanDescription(html)
	assert.Equal(t, "before after", got)
}

func TestCleanDescription_MultilineBlocks(t *testing.T) {
	html := "intro <script>\nline1\nline2\n</script> outro"
	got := CleanDescription(html)
	assert.Equal(t, "intro outro", got)
}

func TestCleanDescription_Truncation(t *testing.T) {
	long := strings.Repeat("d", types.MaxDescriptionLength+1000)
	assert.Len(t, CleanDescription(long), types.MaxDescriptionLength)
}
