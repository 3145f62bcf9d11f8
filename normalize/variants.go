package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"product-extractor/internal/types"
)

// optionKeys is the closed allow-list of variant option dimensions.
// Unrecognized keys are dropped to keep the schema bounded.
var optionKeys = []string{"size", "color", "style", "material"}

// titleParts are the raw fields joined to synthesize a variant title
// when the payload provides none.
var titleParts = []string{"option1", "option2", "option3", "size", "color", "style"}

// NormalizeVariants converts a platform-shaped variant list into at most
// MaxVariants bounded Variant records. Non-array input yields nil.
func NormalizeVariants(value interface{}) []types.Variant {
	elems, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var result []types.Variant
	for i, e := range elems {
		if len(result) == types.MaxVariants {
			break
		}
		m, ok := e.(map[string]interface{})
		if !ok {
			continue
		}
		result = append(result, normalizeVariant(m, i))
	}
	return result
}

func normalizeVariant(m map[string]interface{}, index int) types.Variant {
	raw := types.RawPayload(m)

	id := asString(raw.First("id"))
	sku := asString(raw.First("sku"))
	if id == "" {
		id = sku
	}
	if id == "" {
		id = fmt.Sprintf("variant_%d", index)
	}

	title := raw.FirstString("title", "name")
	if title == "" {
		title = buildVariantTitle(raw)
	}

	return types.Variant{
		ID:        id,
		Title:     title,
		Price:     priceOrZero(raw.First("price")),
		SKU:       sku,
		Available: variantAvailable(m),
		Options:   variantOptions(raw),
	}
}

// buildVariantTitle joins whatever option values the payload exposes,
// falling back to "Default" when none are present.
func buildVariantTitle(raw types.RawPayload) string {
	var parts []string
	for _, key := range titleParts {
		if v := asString(raw.First(key)); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "Default"
	}
	return strings.Join(parts, " / ")
}

// variantAvailable treats absence as availability: only an explicit
// available=false or in_stock=false marks a variant unavailable.
func variantAvailable(m map[string]interface{}) bool {
	if b, ok := m["available"].(bool); ok && !b {
		return false
	}
	if b, ok := m["in_stock"].(bool); ok && !b {
		return false
	}
	return true
}

func variantOptions(raw types.RawPayload) map[string]string {
	options := make(map[string]string)
	for _, key := range optionKeys {
		if v := asString(raw.First(key)); v != "" {
			options[key] = v
		}
	}
	return options
}

// asString renders scalar payload values as strings. Numeric IDs arrive
// as float64 after JSON decoding and must not pick up an exponent or a
// trailing ".0".
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}
