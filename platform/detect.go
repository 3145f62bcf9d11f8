package platform

import (
	"strconv"
	"strings"
)

// Unknown is the platform name used when no registry entry matches.
const Unknown = "unknown"

// Detect returns the name of the first registered platform whose domain
// list matches the URL host, or Unknown. Detection is deterministic:
// the registry is iterated in a fixed order and domains never overlap.
func Detect(rawURL string) string {
	host := hostOf(rawURL)
	if host == "" {
		return Unknown
	}
	for i := range registry {
		for _, domain := range registry[i].Domains {
			// Substring match on the host, so "amazon." covers
			// www.amazon.com, amazon.fr and amazon.co.uk alike.
			if strings.Contains(host, domain) {
				return registry[i].Name
			}
		}
	}
	return Unknown
}

// ExternalID extracts the platform-native product identifier from a URL.
// When the platform is unknown or its pattern does not match, it falls
// back to a deterministic hash of the full URL so that every product has
// a stable identity key. The result is never empty.
func ExternalID(rawURL, platformName string) string {
	if d := Lookup(platformName); d != nil && d.IDPattern != nil {
		if m := d.IDPattern.FindStringSubmatch(rawURL); m != nil {
			// Patterns with alternations leave some groups empty;
			// take the first captured non-empty group.
			for _, g := range m[1:] {
				if g != "" {
					return g
				}
			}
		}
	}
	return HashID(rawURL)
}

// HashID produces a short, stable, non-cryptographic identifier for a
// URL. Collisions are tolerated: uniqueness is best-effort, stability
// across calls is the guarantee.
func HashID(rawURL string) string {
	var h int32
	for _, ch := range rawURL {
		h = h*31 + ch
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return "gen_" + strconv.FormatInt(v, 36)
}
