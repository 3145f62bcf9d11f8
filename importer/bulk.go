// Package importer runs bulk product imports: fixed-size batches,
// bounded concurrency, per-item failure isolation and retry with
// exponential backoff for the network-dependent import call.
// Normalization itself is never retried; it is deterministic and has no
// transient failure mode.
package importer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"product-extractor/internal/types"
)

// maxRecordedErrors caps the per-batch error list so one pathological
// batch cannot blow up the summary payload.
const maxRecordedErrors = 50

// ImportFunc delivers one normalized product to the downstream import
// boundary.
type ImportFunc func(ctx context.Context, product types.UnifiedProduct) error

// ItemError records one failed item by its stable identity key.
type ItemError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Summary is the accounting for one import run. Within each batch the
// error/success accounting matches input order.
type Summary struct {
	BatchID   string      `json:"batch_id"`
	Processed int         `json:"processed"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Errors    []ItemError `json:"errors,omitempty"`
}

// Importer imports products in batches with bounded concurrency.
type Importer struct {
	batchSize     int
	maxConcurrent int
	maxRetries    int
	baseBackoff   time.Duration
	limiter       *rate.Limiter
	logger        types.Logger
	importFn      ImportFunc
}

// New creates an Importer from the engine configuration.
func New(config *types.Config, logger types.Logger, importFn ImportFunc) *Importer {
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	maxConcurrent := config.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	return &Importer{
		batchSize:     batchSize,
		maxConcurrent: maxConcurrent,
		maxRetries:    config.MaxRetries,
		baseBackoff:   500 * time.Millisecond,
		limiter:       rate.NewLimiter(rate.Every(config.RequestDelay), maxConcurrent),
		logger:        logger,
		importFn:      importFn,
	}
}

// Import processes all products in batches. One item's failure never
// aborts its siblings; failures are accumulated into the summary.
// Cancellation is cooperative and checked between batches, not
// mid-batch, since individual imports are short-lived.
func (im *Importer) Import(ctx context.Context, products []types.UnifiedProduct) Summary {
	summary := Summary{BatchID: uuid.NewString()}
	im.logger.Infof("Starting bulk import %s: %d products in batches of %d",
		summary.BatchID, len(products), im.batchSize)

	for start := 0; start < len(products); start += im.batchSize {
		select {
		case <-ctx.Done():
			im.logger.Warnf("Import %s cancelled after %d items", summary.BatchID, summary.Processed)
			return summary
		default:
		}

		end := start + im.batchSize
		if end > len(products) {
			end = len(products)
		}
		im.importBatch(ctx, products[start:end], &summary)
	}

	im.logger.Infof("Bulk import %s finished: %d processed, %d succeeded, %d failed",
		summary.BatchID, summary.Processed, summary.Succeeded, summary.Failed)
	return summary
}

func (im *Importer) importBatch(ctx context.Context, batch []types.UnifiedProduct, summary *Summary) {
	errs := make([]error, len(batch))
	sem := make(chan struct{}, im.maxConcurrent)
	var wg sync.WaitGroup

	for i := range batch {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			errs[i] = im.importOne(ctx, batch[i])
		}(i)
	}
	wg.Wait()

	// Accounting in input order, regardless of completion order.
	for i, err := range errs {
		summary.Processed++
		if err == nil {
			summary.Succeeded++
			continue
		}
		summary.Failed++
		if len(summary.Errors) < maxRecordedErrors {
			summary.Errors = append(summary.Errors, ItemError{
				ID:    batch[i].ExternalID,
				Error: err.Error(),
			})
		}
	}
}

// importOne delivers a single product, retrying with exponential
// backoff up to the retry ceiling.
func (im *Importer) importOne(ctx context.Context, product types.UnifiedProduct) error {
	var lastErr error
	for attempt := 0; attempt <= im.maxRetries; attempt++ {
		if err := im.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := im.importFn(ctx, product); err != nil {
			lastErr = err
			im.logger.Warnf("Import of %s failed (attempt %d/%d): %v",
				product.ExternalID, attempt+1, im.maxRetries+1, err)

			backoff := im.baseBackoff << uint(attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("import failed after %d attempts: %w", im.maxRetries+1, lastErr)
}
