package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/internal/types"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestNormalize_ShopifyPayload(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)

	raw := types.RawPayload{
		"url":          "https://shop.example.com/products/test-shirt",
		"title":        "Test Shirt",
		"body_html":    "<p>Soft cotton</p><script>track()</script>",
		"vendor":       "Acme Apparel",
		"product_type": "Shirts",
		"price":        "49.99",
		"currency":     "EUR",
		"images": []interface{}{
			map[string]interface{}{"src": "https://cdn.shopify.com/s/files/shirt.jpg"},
		},
		"variants": []interface{}{
			map[string]interface{}{"id": float64(111), "option1": "M", "price": "49.99"},
		},
	}

	p := n.Normalize(raw, "shopify")

	assert.Equal(t, "shopify", p.Platform)
	assert.Equal(t, "test-shirt", p.ExternalID)
	assert.Equal(t, "Test Shirt", p.Title)
	assert.Equal(t, "Acme Apparel", p.Brand)
	assert.Equal(t, "Shirts", p.Category)
	assert.Equal(t, 49.99, p.Price)
	assert.Equal(t, "EUR", p.Currency)
	assert.NotContains(t, p.Description, "track()")
	assert.Contains(t, p.Description, "Soft cotton")
	require.Len(t, p.Images, 1)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "M", p.Variants[0].Title)
	assert.Equal(t, fixedClock(), p.ExtractedAt)
	assert.Equal(t, types.ExtractorVersion, p.ExtractorVersion)
}

func TestNormalize_Deterministic(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)
	raw := types.RawPayload{
		"url":   "https://www.amazon.com/dp/B08N5WRWNW",
		"title": "Echo Dot",
		"price": "$49.99",
	}

	first := n.Normalize(raw, "amazon")
	second := n.Normalize(raw, "amazon")

	assert.Equal(t, first, second)
}

func TestNormalize_FallbackChains(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)
	raw := types.RawPayload{
		"name":        "Fallback Name",
		"description": "Plain description",
		"brand":       "Direct Brand",
		"category":    "Direct Category",
	}

	p := n.Normalize(raw, "")

	assert.Equal(t, "unknown", p.Platform)
	assert.Equal(t, "Fallback Name", p.Title)
	assert.Equal(t, "Plain description", p.Description)
	assert.Equal(t, "Direct Brand", p.Brand)
	assert.Equal(t, "Direct Category", p.Category)
}

func TestNormalize_ExternalIDFromURL(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)

	p := n.Normalize(types.RawPayload{"url": "https://www.amazon.fr/dp/B0TESTID12"}, "amazon")
	assert.Equal(t, "B0TESTID12", p.ExternalID)

	// Explicit external_id wins over URL extraction.
	p = n.Normalize(types.RawPayload{
		"url":         "https://www.amazon.fr/dp/B0TESTID12",
		"external_id": "explicit",
	}, "amazon")
	assert.Equal(t, "explicit", p.ExternalID)
}

func TestNormalize_CurrencyHandling(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)

	tests := []struct {
		raw      string
		expected string
	}{
		{"USD", "USD"},
		{"usd", "USD"},
		{"$", "USD"},
		{"€", "EUR"},
		{"₹", "INR"},
		{"", "EUR"},
		{"junk", "EUR"},
	}
	for _, tt := range tests {
		p := n.Normalize(types.RawPayload{"currency": tt.raw}, "unknown")
		assert.Equal(t, tt.expected, p.Currency, "currency %q", tt.raw)
	}
}

func TestNormalize_OriginalPrice(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)

	p := n.Normalize(types.RawPayload{"price": "29.99", "compare_at_price": "39.99"}, "unknown")
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 39.99, *p.OriginalPrice)

	p = n.Normalize(types.RawPayload{"price": "29.99"}, "unknown")
	assert.Nil(t, p.OriginalPrice)

	p = n.Normalize(types.RawPayload{"price": "29.99", "compare_at_price": "0"}, "unknown")
	assert.Nil(t, p.OriginalPrice)

	p = n.Normalize(types.RawPayload{"price": "29.99", "original_price": "junk"}, "unknown")
	assert.Nil(t, p.OriginalPrice)
}

func TestNormalize_NilAndEmptyPayload(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)

	p := n.Normalize(nil, "")
	assert.Equal(t, "unknown", p.Platform)
	assert.NotEmpty(t, p.ExternalID)
	assert.Equal(t, 0.0, p.Price)
	assert.Equal(t, "EUR", p.Currency)
	assert.Empty(t, p.Images)
	assert.Empty(t, p.Variants)
}

func TestNormalize_MalformedFieldsDegrade(t *testing.T) {
	n := NewNormalizerWithClock(fixedClock)
	raw := types.RawPayload{
		"url":      "https://example.com/p/1",
		"title":    12345,
		"price":    "not a price",
		"images":   42,
		"variants": "nope",
		"reviews":  true,
	}

	p := n.Normalize(raw, "unknown")

	assert.Equal(t, "", p.Title)
	assert.Equal(t, 0.0, p.Price)
	assert.Empty(t, p.Images)
	assert.Empty(t, p.Variants)
	assert.Empty(t, p.Reviews)
}
