package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/internal/types"
)

func validProduct() types.UnifiedProduct {
	return types.UnifiedProduct{
		Platform:   "shopify",
		ExternalID: "test-shirt",
		URL:        "https://shop.example.com/products/test-shirt",
		Title:      "Test Shirt",
		Price:      49.99,
		Currency:   "EUR",
		Images:     []string{"https://cdn.shopify.com/s/files/shirt.jpg"},
	}
}

func TestValidate_ValidProduct(t *testing.T) {
	assert.Empty(t, Validate(validProduct()))
}

func TestValidate_ItemizedErrors(t *testing.T) {
	p := types.UnifiedProduct{}
	errs := Validate(p)

	require.Len(t, errs, 4)
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{"TITLE_MISSING", "PRICE_INVALID", "IMAGES_MISSING", "URL_MISSING"}, codes)
}

func TestValidate_SingleFailure(t *testing.T) {
	p := validProduct()
	p.Price = 0

	errs := Validate(p)
	require.Len(t, errs, 1)
	assert.Equal(t, "price", errs[0].Field)
	assert.Equal(t, "PRICE_INVALID", errs[0].Code)
}

func TestCompletenessScore_Bounds(t *testing.T) {
	assert.Equal(t, 0, CompletenessScore(types.UnifiedProduct{}))

	full := validProduct()
	full.Title = "A title with more than twenty runes"
	full.Images = []string{"a", "b", "c", "d", "e", "f"}
	full.Description = strings.Repeat("lorem ipsum ", 20)
	full.Category = "Shirts"
	full.Variants = []types.Variant{{ID: "v1"}}
	full.Reviews = []types.Review{{ID: "r1", Content: "good"}}

	assert.Equal(t, 100, CompletenessScore(full))
}

func TestCompletenessScore_PartialCredit(t *testing.T) {
	p := types.UnifiedProduct{Title: "A title with more than twenty runes"}
	assert.Equal(t, 20, CompletenessScore(p))

	// Short titles earn proportional credit.
	short := types.UnifiedProduct{Title: "ten runes!"}
	assert.Equal(t, 10, CompletenessScore(short))

	// Image credit scales up to five images, four points each.
	imgs := types.UnifiedProduct{Images: []string{"a", "b", "c"}}
	assert.Equal(t, 12, CompletenessScore(imgs))
}
