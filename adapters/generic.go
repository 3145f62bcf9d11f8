package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/internal/types"
)

// GenericAdapter extracts product data from any platform without a
// structured endpoint, cascading through the most reliable sources a
// page exposes: JSON-LD Product blocks, then OpenGraph metadata, then
// generic DOM selectors. Later layers only fill fields earlier layers
// left empty.
type GenericAdapter struct {
	page   PageAccessor
	logger types.Logger
}

// NewGenericAdapter creates a generic adapter over the given page
// accessor.
func NewGenericAdapter(page PageAccessor, logger types.Logger) *GenericAdapter {
	return &GenericAdapter{page: page, logger: logger}
}

var (
	genericTitleSelectors = []string{
		"h1[itemprop='name']",
		"h1.product-title",
		"h1",
	}
	genericBrandSelectors = []string{
		"[itemprop='brand']",
		".brand",
		".vendor",
	}
	genericDescriptionSelectors = []string{
		"[itemprop='description']",
		".product-description",
		"#description",
	}
	genericPriceSelectors = []string{
		"[itemprop='price']",
		".price",
		"[class*='price']",
	}
	genericOriginalPriceSelectors = []string{
		".a-text-strike",
		".was-price",
		".old-price",
		"del",
		"s.price",
	}
	genericImageSelectors = []string{
		"[itemprop='image']",
		".product-gallery img",
		".product-image img",
		".gallery img",
	}
)

// Extract fetches the page once and layers the extraction sources.
func (g *GenericAdapter) Extract(ctx context.Context, productURL string) (types.RawPayload, error) {
	html, err := g.page.FetchHTML(ctx, productURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get product page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse product page: %w", err)
	}

	raw := types.RawPayload{"url": productURL}

	g.applyJSONLD(doc, raw)
	g.applyOpenGraph(doc, raw)
	g.applyDOM(doc, raw)

	if raw.FirstString("title", "name") == "" {
		return nil, fmt.Errorf("no product data found on %s", productURL)
	}
	return raw, nil
}

// applyJSONLD scans script[type="application/ld+json"] blocks for a
// Product item. Malformed blocks are skipped, never fatal.
func (g *GenericAdapter) applyJSONLD(doc *goquery.Document, raw types.RawPayload) {
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}

		items, ok := data.([]interface{})
		if !ok {
			items = []interface{}{data}
		}
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok || m["@type"] != "Product" {
				continue
			}
			g.applyProductItem(m, raw)
			return false
		}
		return true
	})
}

func (g *GenericAdapter) applyProductItem(m map[string]interface{}, raw types.RawPayload) {
	item := types.RawPayload(m)

	setIfEmpty(raw, "title", item.FirstString("name"))
	setIfEmpty(raw, "description", item.FirstString("description"))
	setIfEmpty(raw, "sku", item.FirstString("sku", "productID"))

	switch brand := m["brand"].(type) {
	case string:
		setIfEmpty(raw, "brand", brand)
	case map[string]interface{}:
		if name, ok := brand["name"].(string); ok {
			setIfEmpty(raw, "brand", name)
		}
	}

	if image, ok := m["image"]; ok {
		if _, present := raw["images"]; !present {
			raw["images"] = image
		}
	}

	offer := firstOffer(m["offers"])
	if offer != nil {
		o := types.RawPayload(offer)
		if _, present := raw["price"]; !present {
			if p := o.First("price"); p != nil {
				raw["price"] = p
			}
		}
		setIfEmpty(raw, "currency", o.FirstString("priceCurrency"))
	}
}

func firstOffer(offers interface{}) map[string]interface{} {
	switch o := offers.(type) {
	case map[string]interface{}:
		return o
	case []interface{}:
		if len(o) > 0 {
			if m, ok := o[0].(map[string]interface{}); ok {
				return m
			}
		}
	}
	return nil
}

// applyOpenGraph fills title, description and image from og:/twitter:
// meta tags.
func (g *GenericAdapter) applyOpenGraph(doc *goquery.Document, raw types.RawPayload) {
	meta := func(names ...string) string {
		for _, name := range names {
			sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)
			if content, ok := doc.Find(sel).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
				return strings.TrimSpace(content)
			}
		}
		return ""
	}

	setIfEmpty(raw, "title", meta("og:title", "twitter:title"))
	setIfEmpty(raw, "description", meta("og:description", "twitter:description", "description"))
	if _, present := raw["images"]; !present {
		if img := meta("og:image"); img != "" {
			raw["images"] = img
		}
	}
	setIfEmpty(raw, "currency", meta("og:price:currency", "product:price:currency"))
	if _, present := raw["price"]; !present {
		if price := meta("og:price:amount", "product:price:amount"); price != "" {
			raw["price"] = price
		}
	}
}

// applyDOM is the last layer: plain CSS selector scraping.
func (g *GenericAdapter) applyDOM(doc *goquery.Document, raw types.RawPayload) {
	setIfEmpty(raw, "title", firstText(doc, genericTitleSelectors))
	setIfEmpty(raw, "brand", cleanBrandPrefix(firstText(doc, genericBrandSelectors)))
	setIfEmpty(raw, "description", firstHTML(doc, genericDescriptionSelectors))

	if _, present := raw["price"]; !present {
		if el := doc.Find("[itemprop='price']").First(); el.Length() > 0 {
			if content, ok := el.Attr("content"); ok && content != "" {
				raw["price"] = content
			}
		}
	}
	if _, present := raw["price"]; !present {
		if price := firstText(doc, genericPriceSelectors); price != "" {
			raw["price"] = price
		}
	}
	if _, present := raw["compare_at_price"]; !present {
		if original := firstText(doc, genericOriginalPriceSelectors); original != "" {
			raw["compare_at_price"] = original
		}
	}
	if _, present := raw["currency"]; !present {
		if el := doc.Find("[itemprop='priceCurrency']").First(); el.Length() > 0 {
			if content, ok := el.Attr("content"); ok {
				raw["currency"] = content
			}
		}
	}
	if _, present := raw["images"]; !present {
		if images := collectImageSources(doc, genericImageSelectors); len(images) > 0 {
			raw["images"] = images
		}
	}
}

// cleanBrandPrefix strips storefront boilerplate like "by X" or
// "Visit the X Store".
func cleanBrandPrefix(brand string) string {
	s := strings.TrimSpace(brand)
	for _, prefix := range []string{"by ", "By ", "Visit the ", "Brand: ", "Marque: "} {
		s = strings.TrimPrefix(s, prefix)
	}
	return strings.TrimSuffix(strings.TrimSpace(s), " Store")
}

func setIfEmpty(raw types.RawPayload, key, value string) {
	if value == "" {
		return
	}
	if existing, ok := raw[key].(string); ok && existing != "" {
		return
	}
	if _, present := raw[key]; present {
		return
	}
	raw[key] = value
}
