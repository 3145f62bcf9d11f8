package normalize

import (
	"math"
	"regexp"
	"strings"
	"time"

	"product-extractor/internal/types"
	"product-extractor/platform"
)

// DefaultCurrency is applied when a payload carries no usable currency.
const DefaultCurrency = "EUR"

var isoCurrency = regexp.MustCompile(`^[A-Z]{3}$`)

var currencySymbolCodes = map[string]string{
	"€": "EUR",
	"$": "USD",
	"£": "GBP",
	"¥": "JPY",
	"₹": "INR",
}

// Normalizer assembles UnifiedProduct records from raw payloads. It is
// constructed per extraction session; the clock is injected so tests can
// pin timestamps.
type Normalizer struct {
	now     func() time.Time
	version string
}

// NewNormalizer creates a Normalizer with the real clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now, version: types.ExtractorVersion}
}

// NewNormalizerWithClock creates a Normalizer with a fixed clock.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now, version: types.ExtractorVersion}
}

// Normalize collapses a raw payload into a UnifiedProduct. It is a pure
// function of its inputs apart from the extraction timestamp: identical
// payloads yield identical records modulo ExtractedAt. It never fails;
// malformed fields degrade to safe defaults.
func (n *Normalizer) Normalize(raw types.RawPayload, platformName string) types.UnifiedProduct {
	if raw == nil {
		raw = types.RawPayload{}
	}
	if platformName == "" {
		platformName = platform.Unknown
	}

	rawURL := raw.FirstString("url")
	externalID := raw.FirstString("external_id")
	if externalID == "" {
		externalID = platform.ExternalID(rawURL, platformName)
	}

	return types.UnifiedProduct{
		Platform:   platformName,
		ExternalID: externalID,
		URL:        rawURL,

		Title:       CleanTitle(raw.FirstString("title", "name")),
		Description: CleanDescription(raw.FirstString("description", "body_html")),
		Brand:       strings.TrimSpace(raw.FirstString("brand", "vendor")),
		Category:    strings.TrimSpace(raw.FirstString("category", "product_type")),
		SKU:         asString(raw.First("sku")),

		Price:         priceOrZero(raw.First("price")),
		OriginalPrice: originalPrice(raw.First("compare_at_price", "original_price")),
		Currency:      normalizeCurrency(raw.FirstString("currency")),

		Images:   NormalizeImages(raw.First("images", "media"), platform.UpscaleFunc(platformName)),
		Variants: NormalizeVariants(raw.First("variants")),
		Reviews:  NormalizeReviews(raw.First("reviews")),

		ExtractedAt:      n.now().UTC(),
		ExtractorVersion: n.version,
	}
}

// originalPrice parses a compare-at price, yielding nil when the value
// is absent, unparseable or non-positive.
func originalPrice(value interface{}) *float64 {
	if value == nil {
		return nil
	}
	f := ParseNumber(value)
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil
	}
	return &f
}

func normalizeCurrency(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if isoCurrency.MatchString(s) {
		return s
	}
	if code, ok := currencySymbolCodes[strings.TrimSpace(raw)]; ok {
		return code
	}
	return DefaultCurrency
}
