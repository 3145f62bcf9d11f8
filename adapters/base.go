// Package adapters contains the per-platform-surface extraction
// strategies. Each adapter turns one product URL into a RawPayload; it
// owns fetching and DOM access so that the normalize package stays pure.
package adapters

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"product-extractor/internal/types"
	"product-extractor/utils"
)

// PageAccessor abstracts page access so adapters can be tested without a
// real network or browser. BaseAdapter is the production implementation;
// tests substitute fakes.
type PageAccessor interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	FetchJSON(ctx context.Context, url string) (map[string]interface{}, error)
}

// Adapter is an extraction strategy for one platform surface.
type Adapter interface {
	Extract(ctx context.Context, url string) (types.RawPayload, error)
}

// BaseAdapter provides the page access and goquery helpers shared by all
// extraction strategies.
type BaseAdapter struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// NewBaseAdapter creates a base adapter with initialized HTTP and
// browser clients.
func NewBaseAdapter(config *types.Config, logger types.Logger) *BaseAdapter {
	return &BaseAdapter{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// FetchHTML retrieves the HTML content of a page using either the HTTP
// client or the headless browser, depending on configuration.
func (b *BaseAdapter) FetchHTML(ctx context.Context, url string) (string, error) {
	if b.config.UseHeadlessBrowser {
		return b.browserClient.GetPageContent(ctx, url)
	}

	body, err := b.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchJSON retrieves and decodes a JSON endpoint.
func (b *BaseAdapter) FetchJSON(ctx context.Context, url string) (map[string]interface{}, error) {
	return b.httpClient.GetJSON(ctx, url)
}

// ParseHTML parses HTML content into a goquery document.
func (b *BaseAdapter) ParseHTML(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// Close cleans up resources.
func (b *BaseAdapter) Close() {
	if b.httpClient != nil {
		b.httpClient.Close()
	}
}

// firstText returns the text of the first selector in the ordered list
// that matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHTML returns the inner HTML of the first selector matching a
// non-empty element.
func firstHTML(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if html, err := el.Html(); err == nil && strings.TrimSpace(html) != "" {
			return html
		}
	}
	return ""
}

// collectImageSources gathers candidate image URLs from the first
// selector that matches anything, preferring high-resolution data
// attributes over src.
func collectImageSources(doc *goquery.Document, selectors []string) []interface{} {
	var images []interface{}
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range []string{"data-old-hires", "data-src", "srcset", "src"} {
				v, ok := s.Attr(attr)
				if !ok || strings.TrimSpace(v) == "" {
					continue
				}
				if attr == "srcset" {
					v = firstSrcsetURL(v)
					if v == "" {
						continue
					}
				}
				images = append(images, v)
				break
			}
		})
		if len(images) > 0 {
			break
		}
	}
	return images
}

// firstSrcsetURL picks the first URL out of a srcset attribute.
func firstSrcsetURL(srcset string) string {
	entry := strings.TrimSpace(strings.Split(srcset, ",")[0])
	return strings.TrimSpace(strings.Split(entry, " ")[0])
}
