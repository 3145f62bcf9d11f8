package types

import "time"

// Hard bounds enforced on every UnifiedProduct regardless of source platform.
const (
	MaxTitleLength       = 500
	MaxDescriptionLength = 50000
	MaxReviewLength      = 5000
	MaxImages            = 50
	MaxVariants          = 100
	MaxReviews           = 100
)

// ExtractorVersion is stamped on every normalized record for provenance.
const ExtractorVersion = "5.0.0"

// RawPayload is the untyped, platform-shaped bag of fields an extraction
// strategy produces. It is owned by the extraction call that produced it
// and is discarded after normalization.
type RawPayload map[string]interface{}

// First returns the first non-nil value among the given keys.
func (r RawPayload) First(keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// FirstString returns the first non-empty string value among the given keys.
// Non-string values are skipped rather than coerced.
func (r RawPayload) FirstString(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// UnifiedProduct is the canonical output record of the normalization
// engine, independent of source platform.
type UnifiedProduct struct {
	Platform   string `json:"platform"`
	ExternalID string `json:"external_id"`
	URL        string `json:"url"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	SKU         string `json:"sku"`

	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Currency      string   `json:"currency"`

	Images   []string  `json:"images"`
	Variants []Variant `json:"variants"`
	Reviews  []Review  `json:"reviews"`

	ExtractedAt      time.Time `json:"extracted_at"`
	ExtractorVersion string    `json:"extractor_version"`
}

// Variant is a purchasable sub-configuration of a product.
type Variant struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Price     float64           `json:"price"`
	SKU       string            `json:"sku"`
	Available bool              `json:"available"`
	Options   map[string]string `json:"options"`
}

// Review is a normalized customer review. Entries without textual content
// are dropped before this type is ever constructed.
type Review struct {
	ID       string  `json:"id"`
	Author   string  `json:"author"`
	Rating   float64 `json:"rating"`
	Content  string  `json:"content"`
	Verified bool    `json:"verified"`
}

// Config holds the runtime configuration for the extraction engine.
type Config struct {
	RequestDelay          time.Duration
	MaxRetries            int
	Timeout               time.Duration
	MaxConcurrentRequests int
	BatchSize             int
	UseHeadlessBrowser    bool
	UserAgent             string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RequestDelay:          1 * time.Second,
		MaxRetries:            3,
		Timeout:               30 * time.Second,
		MaxConcurrentRequests: 3,
		BatchSize:             5,
		UseHeadlessBrowser:    false,
		UserAgent:             "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

// Logger defines the logging interface used across the engine.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
