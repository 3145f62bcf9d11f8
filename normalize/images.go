package normalize

import (
	"net/url"
	"strings"

	"product-extractor/internal/types"
)

// NormalizeURL canonicalizes a URL for storage. Protocol-relative URLs
// are upgraded to https; anything that is not an absolute http(s) URL
// (relative paths, data: URIs, garbage) is rejected.
func NormalizeURL(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return s, true
}

// NormalizeImages accepts whatever shape a platform uses for its image
// list (a single value, an array of URL strings, or an array of objects
// keyed src/url/image) and returns at most MaxImages absolute URLs,
// deduplicated by exact string in first-seen order. The platform upscale
// hook runs before deduplication so that several size variants of the
// same photo collapse into one canonical entry.
func NormalizeImages(value interface{}, upscale func(string) string) []string {
	if value == nil {
		return nil
	}

	var elems []interface{}
	switch v := value.(type) {
	case []interface{}:
		elems = v
	case []string:
		elems = make([]interface{}, len(v))
		for i, s := range v {
			elems[i] = s
		}
	default:
		elems = []interface{}{value}
	}

	seen := make(map[string]bool, len(elems))
	var result []string
	for _, e := range elems {
		src := imageSource(e)
		if src == "" {
			continue
		}
		normalized, ok := NormalizeURL(src)
		if !ok {
			continue
		}
		if upscale != nil {
			normalized = upscale(normalized)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
		if len(result) == types.MaxImages {
			break
		}
	}
	return result
}

// imageSource pulls the URL out of one image entry, which may be a bare
// string or an object exposing src, url or image.
func imageSource(e interface{}) string {
	switch v := e.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, key := range []string{"src", "url", "image"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
