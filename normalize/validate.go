package normalize

import (
	"product-extractor/internal/types"
)

// FieldError describes one failed import-boundary check. Validation
// errors are itemized so the import overlay can show users exactly
// which field is missing.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validate applies the import-boundary acceptance checks to a normalized
// product. A structurally valid but incomplete record (no images, zero
// price) is rejected here, not during normalization; the user can edit
// the product and retry.
func Validate(p types.UnifiedProduct) []FieldError {
	var errs []FieldError
	if p.Title == "" {
		errs = append(errs, FieldError{Field: "title", Code: "TITLE_MISSING", Message: "title is required"})
	}
	if p.Price <= 0 {
		errs = append(errs, FieldError{Field: "price", Code: "PRICE_INVALID", Message: "price must be a positive number"})
	}
	if len(p.Images) == 0 {
		errs = append(errs, FieldError{Field: "images", Code: "IMAGES_MISSING", Message: "at least one image is required"})
	}
	if p.URL == "" {
		errs = append(errs, FieldError{Field: "url", Code: "URL_MISSING", Message: "product URL is required"})
	}
	return errs
}

// CompletenessScore rates a normalized product 0-100 by weighted field
// presence: title 20, price 20, images 20, description 15, category 10,
// variants 10, reviews 5. Image credit scales up to five images.
func CompletenessScore(p types.UnifiedProduct) int {
	score := 0.0

	if n := len([]rune(p.Title)); n > 0 {
		if n >= 20 {
			score += 20
		} else {
			score += float64(n) / 20 * 20
		}
	}
	if p.Price > 0 {
		score += 20
	}
	if n := len(p.Images); n > 0 {
		if n > 5 {
			n = 5
		}
		score += float64(n) * 4
	}
	switch n := len([]rune(p.Description)); {
	case n >= 200:
		score += 15
	case n >= 100:
		score += 15 * 0.7
	case n >= 50:
		score += 15 * 0.4
	case n > 0:
		score += 15 * 0.2
	}
	if p.Category != "" {
		score += 10
	}
	if len(p.Variants) > 0 {
		score += 10
	}
	if len(p.Reviews) > 0 {
		score += 5
	}

	return int(score + 0.5)
}
