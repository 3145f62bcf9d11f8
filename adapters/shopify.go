package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/internal/types"
)

var productHandlePattern = regexp.MustCompile(`/products/([^/?#]+)`)

// ErrNotProductPage marks URLs that resolve to collection or content
// pages rather than a single product.
var ErrNotProductPage = errors.New("not a product page")

// ShopifyAdapter extracts product data from Shopify storefronts using a
// layered strategy: the structured /products/{handle}.js endpoint first,
// DOM-selector scraping as the fallback. Both layers produce the same
// RawPayload shape for the assembler.
type ShopifyAdapter struct {
	page   PageAccessor
	logger types.Logger
}

// NewShopifyAdapter creates a Shopify adapter over the given page
// accessor.
func NewShopifyAdapter(page PageAccessor, logger types.Logger) *ShopifyAdapter {
	return &ShopifyAdapter{page: page, logger: logger}
}

// Extract runs the two-state strategy for one product URL.
func (s *ShopifyAdapter) Extract(ctx context.Context, productURL string) (types.RawPayload, error) {
	if jsonURL, ok := productJSONURL(productURL); ok {
		payload, err := s.page.FetchJSON(ctx, jsonURL)
		if err == nil {
			s.logger.Debugf("Extracted structured product data from %s", jsonURL)
			return s.fromProductJSON(payload, productURL), nil
		}
		s.logger.Warnf("Structured fetch failed for %s, falling back to DOM scraping: %v", jsonURL, err)
	}

	return s.extractFromDOM(ctx, productURL)
}

// productJSONURL derives the structured endpoint from a product page
// URL: https://host/products/handle -> https://host/products/handle.js
func productJSONURL(productURL string) (string, bool) {
	u, err := url.Parse(productURL)
	if err != nil || u.Host == "" {
		return "", false
	}
	m := productHandlePattern.FindStringSubmatch(u.Path)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s://%s/products/%s.js", u.Scheme, u.Host, m[1]), true
}

// fromProductJSON adapts the Shopify product JSON shape into a raw
// payload. The endpoint reports prices in cents; the page URL and a
// currency are not part of the body and are filled in here.
func (s *ShopifyAdapter) fromProductJSON(payload map[string]interface{}, productURL string) types.RawPayload {
	raw := types.RawPayload{}
	for k, v := range payload {
		raw[k] = v
	}
	raw["url"] = productURL

	if price, ok := payload["price"].(float64); ok {
		raw["price"] = price / 100
	}
	if compareAt, ok := payload["compare_at_price"].(float64); ok && compareAt > 0 {
		raw["compare_at_price"] = compareAt / 100
	}
	if variants, ok := payload["variants"].([]interface{}); ok {
		raw["variants"] = centsToUnits(variants)
		// The top-level price is absent on some themes; the first
		// variant's price stands in for it.
		if _, ok := raw["price"]; !ok && len(variants) > 0 {
			if first, ok := variants[0].(map[string]interface{}); ok {
				if p, ok := first["price"].(float64); ok {
					raw["price"] = p / 100
				}
			}
		}
	}
	return raw
}

// centsToUnits rewrites variant prices from cents to currency units,
// leaving string prices (already in units on older themes) untouched.
func centsToUnits(variants []interface{}) []interface{} {
	out := make([]interface{}, 0, len(variants))
	for _, v := range variants {
		m, ok := v.(map[string]interface{})
		if !ok {
			out = append(out, v)
			continue
		}
		clone := make(map[string]interface{}, len(m))
		for k, val := range m {
			clone[k] = val
		}
		if p, ok := clone["price"].(float64); ok {
			clone["price"] = p / 100
		}
		out = append(out, clone)
	}
	return out
}

// Ordered DOM selector lists per field; the first matching, non-empty
// selector wins. Covers the common Shopify themes.
var (
	shopifyTitleSelectors = []string{
		"h1.product__title",
		".product__title h1",
		"h1.product-single__title",
		"h1[class*='product'][class*='title']",
		"h1",
	}
	shopifyPriceSelectors = []string{
		".price__regular .price-item--regular",
		".product__price",
		".price .price-item",
		"[itemprop='price']",
		".price",
	}
	shopifyOriginalPriceSelectors = []string{
		".price__sale .price-item--regular",
		"s.price-item",
		".product__price--compare",
	}
	shopifyDescriptionSelectors = []string{
		".product__description",
		".product-single__description",
		"[itemprop='description']",
		".product-description",
	}
	shopifyImageSelectors = []string{
		".product__media img",
		".product-single__media img",
		".product-gallery img",
		"img[src*='/products/']",
	}
	shopifyVendorSelectors = []string{
		".product__vendor",
		"[itemprop='brand']",
		".product-single__vendor",
	}
)

// extractFromDOM scrapes the product page with ordered CSS selector
// lists per field.
func (s *ShopifyAdapter) extractFromDOM(ctx context.Context, productURL string) (types.RawPayload, error) {
	html, err := s.page.FetchHTML(ctx, productURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get product page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	if !IsProductPage(productURL, doc) {
		return nil, fmt.Errorf("%w: %s", ErrNotProductPage, productURL)
	}

	raw := types.RawPayload{
		"url":   productURL,
		"title": firstText(doc, shopifyTitleSelectors),
	}
	if price := firstText(doc, shopifyPriceSelectors); price != "" {
		raw["price"] = price
	}
	if originalPrice := firstText(doc, shopifyOriginalPriceSelectors); originalPrice != "" {
		raw["compare_at_price"] = originalPrice
	}
	if description := firstHTML(doc, shopifyDescriptionSelectors); description != "" {
		raw["description"] = description
	}
	if vendor := firstText(doc, shopifyVendorSelectors); vendor != "" {
		raw["vendor"] = vendor
	}
	if images := collectImageSources(doc, shopifyImageSelectors); len(images) > 0 {
		raw["images"] = images
	}
	if variants := domVariants(doc); len(variants) > 0 {
		raw["variants"] = variants
	}

	s.logger.Debugf("Extracted product data from DOM for %s", productURL)
	return raw, nil
}

// domVariants reads variant options out of the cart form's variant
// selector, the only variant data present in static markup.
func domVariants(doc *goquery.Document) []interface{} {
	var variants []interface{}
	doc.Find("select[name='id'] option, form[action*='/cart/add'] select option").Each(func(_ int, opt *goquery.Selection) {
		value, ok := opt.Attr("value")
		if !ok || strings.TrimSpace(value) == "" {
			return
		}
		variant := map[string]interface{}{
			"id":    value,
			"title": strings.TrimSpace(opt.Text()),
		}
		if price, ok := opt.Attr("data-price"); ok {
			variant["price"] = price
		}
		if _, disabled := opt.Attr("disabled"); disabled {
			variant["available"] = false
		}
		variants = append(variants, variant)
	})
	return variants
}

// IsProductPage classifies a page as a product page (vs. a collection or
// content page) from its URL path and DOM markers.
func IsProductPage(rawURL string, doc *goquery.Document) bool {
	if u, err := url.Parse(rawURL); err == nil {
		if productHandlePattern.MatchString(u.Path) {
			return true
		}
		if strings.Contains(u.Path, "/collections/") && !strings.Contains(u.Path, "/products/") {
			return false
		}
	}
	if doc != nil && doc.Find("form[action*='/cart/add']").Length() > 0 {
		return true
	}
	return false
}
