// Package extractor orchestrates the full pipeline for one product URL:
// platform detection, strategy selection, raw payload extraction,
// normalization and import-boundary validation.
package extractor

import (
	"context"
	"fmt"

	"product-extractor/adapters"
	"product-extractor/internal/types"
	"product-extractor/normalize"
	"product-extractor/platform"
)

// Result is the outcome of extracting one URL. ValidationErrors is
// non-empty when the product is structurally valid but incomplete for
// import; the product is still returned so users can fix it.
type Result struct {
	Product           types.UnifiedProduct  `json:"product"`
	Platform          string                `json:"platform"`
	CompletenessScore int                   `json:"completeness_score"`
	ValidationErrors  []normalize.FieldError `json:"validation_errors,omitempty"`
}

// Engine is a session-scoped extraction service. It holds no global
// state; construct one per session and Close it when done.
type Engine struct {
	config     *types.Config
	logger     types.Logger
	base       *adapters.BaseAdapter
	shopify    *adapters.ShopifyAdapter
	generic    *adapters.GenericAdapter
	normalizer *normalize.Normalizer
}

// NewEngine creates an extraction engine with production page access.
func NewEngine(config *types.Config, logger types.Logger) *Engine {
	base := adapters.NewBaseAdapter(config, logger)
	return &Engine{
		config:     config,
		logger:     logger,
		base:       base,
		shopify:    adapters.NewShopifyAdapter(base, logger),
		generic:    adapters.NewGenericAdapter(base, logger),
		normalizer: normalize.NewNormalizer(),
	}
}

// NewEngineWithAccessor creates an engine over a custom PageAccessor,
// for tests and embedding.
func NewEngineWithAccessor(config *types.Config, logger types.Logger, page adapters.PageAccessor) *Engine {
	return &Engine{
		config:     config,
		logger:     logger,
		shopify:    adapters.NewShopifyAdapter(page, logger),
		generic:    adapters.NewGenericAdapter(page, logger),
		normalizer: normalize.NewNormalizer(),
	}
}

// Extract runs the full pipeline for one URL. A detection miss is not an
// error: the product proceeds with platform "unknown" and a hashed
// external id. An error is returned only when both extraction strategies
// fail, and it is reported once, not per field.
func (e *Engine) Extract(ctx context.Context, url string) (*Result, error) {
	platformName := platform.Detect(url)
	e.logger.Infof("Extracting %s (platform: %s)", url, platformName)

	var adapter adapters.Adapter = e.generic
	if platformName == "shopify" {
		adapter = e.shopify
	}

	raw, err := adapter.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extraction failed for %s: %w", url, err)
	}

	if _, present := raw["url"]; !present {
		raw["url"] = url
	}
	raw["external_id"] = platform.ExternalID(url, platformName)

	product := e.normalizer.Normalize(raw, platformName)
	errs := normalize.Validate(product)
	score := normalize.CompletenessScore(product)

	e.logger.Infof("Extracted %q (external id %s, score %d, %d validation errors)",
		product.Title, product.ExternalID, score, len(errs))

	return &Result{
		Product:           product,
		Platform:          platformName,
		CompletenessScore: score,
		ValidationErrors:  errs,
	}, nil
}

// ExtractAll extracts a list of URLs sequentially. Per-URL failures are
// recorded and do not abort the remaining URLs.
func (e *Engine) ExtractAll(ctx context.Context, urls []string) ([]Result, []error) {
	var results []Result
	var errs []error
	for _, url := range urls {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return results, errs
		default:
		}

		result, err := e.Extract(ctx, url)
		if err != nil {
			e.logger.Warnf("Skipping %s: %v", url, err)
			errs = append(errs, err)
			continue
		}
		results = append(results, *result)
	}
	return results, errs
}

// Close cleans up resources.
func (e *Engine) Close() {
	if e.base != nil {
		e.base.Close()
	}
}
