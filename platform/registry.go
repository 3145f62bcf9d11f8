// Package platform holds the static registry of supported e-commerce
// platforms and the URL-based platform detector. Adding a platform is a
// pure data addition here; no normalizer changes are ever required.
package platform

import (
	"regexp"
	"strings"
)

// Descriptor describes one platform: how to recognize its URLs, how to
// pull the platform-native product identifier out of them, and which
// fields its pages are known to expose.
type Descriptor struct {
	Name            string
	Domains         []string
	IDPattern       *regexp.Regexp
	SupportedFields map[string]bool
	// UpscaleImage rewrites an image URL to its highest-resolution
	// variant. Applied before deduplication so that multiple size
	// variants of one photo collapse into a single entry. Nil means
	// no platform-specific rewrite.
	UpscaleImage func(string) string
}

func fields(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// registry is ordered: detection returns the first matching entry.
// Domain lists must not overlap between entries.
var registry = []Descriptor{
	{
		Name:            "amazon",
		Domains:         []string{"amazon.", "media-amazon.com"},
		IDPattern:       regexp.MustCompile(`(?i)/(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})`),
		SupportedFields: fields("title", "price", "images", "variants", "reviews", "brand"),
		UpscaleImage:    upscaleAmazon,
	},
	{
		Name:            "aliexpress",
		Domains:         []string{"aliexpress.", "alicdn.com"},
		IDPattern:       regexp.MustCompile(`/item/(\d+)\.html|goods_id=(\d+)`),
		SupportedFields: fields("title", "price", "images", "variants", "reviews"),
		UpscaleImage:    upscaleAliExpress,
	},
	{
		Name:            "ebay",
		Domains:         []string{"ebay."},
		IDPattern:       regexp.MustCompile(`/itm/(\d+)`),
		SupportedFields: fields("title", "price", "images", "variants"),
		UpscaleImage:    upscaleEbay,
	},
	{
		Name:            "etsy",
		Domains:         []string{"etsy.", "etsystatic.com"},
		IDPattern:       regexp.MustCompile(`/listing/(\d+)`),
		SupportedFields: fields("title", "price", "images", "variants", "reviews"),
		UpscaleImage:    upscaleEtsy,
	},
	{
		Name:            "temu",
		Domains:         []string{"temu."},
		IDPattern:       regexp.MustCompile(`/product-(\d+)\.html|goods_id=(\d+)`),
		SupportedFields: fields("title", "price", "images", "variants"),
	},
	{
		Name:            "shein",
		Domains:         []string{"shein."},
		IDPattern:       regexp.MustCompile(`-p-(\d+)`),
		SupportedFields: fields("title", "price", "images", "variants"),
	},
	{
		Name:            "walmart",
		Domains:         []string{"walmart."},
		IDPattern:       regexp.MustCompile(`/ip/(?:[^/]+/)?(\d+)`),
		SupportedFields: fields("title", "price", "images", "reviews"),
	},
	{
		Name:            "cdiscount",
		Domains:         []string{"cdiscount."},
		IDPattern:       regexp.MustCompile(`/f-\d+-([a-z0-9]+)\.html`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		Name:            "fnac",
		Domains:         []string{"fnac."},
		IDPattern:       regexp.MustCompile(`/a(\d+)`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		Name:            "rakuten",
		Domains:         []string{"rakuten."},
		IDPattern:       regexp.MustCompile(`/offer/buy/(\d+)`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		Name:            "alibaba",
		Domains:         []string{"alibaba.", "1688.com"},
		IDPattern:       regexp.MustCompile(`/product-detail/[^/]*_(\d+)\.html|/offer/(\d+)\.html`),
		SupportedFields: fields("title", "price", "images", "variants"),
	},
	{
		Name:            "banggood",
		Domains:         []string{"banggood."},
		IDPattern:       regexp.MustCompile(`-p-(\d+)\.html`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		Name:            "dhgate",
		Domains:         []string{"dhgate."},
		IDPattern:       regexp.MustCompile(`/product/[^/]+/(\d+)\.html`),
		SupportedFields: fields("title", "price", "images", "variants"),
	},
	{
		Name:            "wish",
		Domains:         []string{"wish.com"},
		IDPattern:       regexp.MustCompile(`/product/([a-f0-9]{24})`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		Name:            "target",
		Domains:         []string{"target.com"},
		IDPattern:       regexp.MustCompile(`/A-(\d+)`),
		SupportedFields: fields("title", "price", "images", "reviews"),
	},
	{
		Name:            "bestbuy",
		Domains:         []string{"bestbuy."},
		IDPattern:       regexp.MustCompile(`/(\d+)\.p`),
		SupportedFields: fields("title", "price", "images", "reviews"),
	},
	{
		Name:            "newegg",
		Domains:         []string{"newegg."},
		IDPattern:       regexp.MustCompile(`/p/([A-Z0-9-]+)`),
		SupportedFields: fields("title", "price", "images"),
	},
	{
		// Shopify storefronts run on custom domains; myshopify.com and
		// the CDN host are the reliable URL signals. Custom-domain
		// stores are detected at extraction time via page markers.
		Name:            "shopify",
		Domains:         []string{"myshopify.com", "cdn.shopify.com"},
		IDPattern:       regexp.MustCompile(`/products/([^/?#]+)`),
		SupportedFields: fields("title", "price", "images", "variants", "description", "brand", "category"),
		UpscaleImage:    upscaleShopify,
	},
}

// Register appends a platform descriptor to the registry. It exists for
// config-file platform additions and must only be called during startup,
// before any detection runs.
func Register(d Descriptor) {
	registry = append(registry, d)
}

// Lookup returns the descriptor for a platform name, or nil.
func Lookup(name string) *Descriptor {
	for i := range registry {
		if registry[i].Name == name {
			return &registry[i]
		}
	}
	return nil
}

// Names returns the registered platform names in detection order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for i := range registry {
		names = append(names, registry[i].Name)
	}
	return names
}

// Supports reports whether a platform is known to expose a field.
// Unknown platforms support nothing beyond best-effort extraction.
func Supports(name, field string) bool {
	d := Lookup(name)
	if d == nil {
		return false
	}
	return d.SupportedFields[field]
}

// UpscaleFunc returns the image-upscale hook for a platform, or nil.
func UpscaleFunc(name string) func(string) string {
	d := Lookup(name)
	if d == nil {
		return nil
	}
	return d.UpscaleImage
}

var (
	amazonSizeToken  = regexp.MustCompile(`\._[A-Z]{2}\d+_\.`)
	amazonSXYToken   = regexp.MustCompile(`\._S[XY]\d+_\.`)
	aliSizeSuffix    = regexp.MustCompile(`_\d+x\d+\w*\.`)
	shopifySizeName  = regexp.MustCompile(`_(?:pico|icon|thumb|small|compact|medium|large|grande)\.`)
	shopifySizeDims  = regexp.MustCompile(`_\d+x\d+(?:@\dx)?\.`)
	ebaySizeToken    = regexp.MustCompile(`s-l\d+`)
	etsySizeToken    = regexp.MustCompile(`il_\d+x\d+`)
)

func upscaleAmazon(src string) string {
	src = amazonSizeToken.ReplaceAllString(src, "._SL1500_.")
	return amazonSXYToken.ReplaceAllString(src, "._SL1500_.")
}

func upscaleAliExpress(src string) string {
	return aliSizeSuffix.ReplaceAllString(src, "_800x800.")
}

func upscaleShopify(src string) string {
	src = shopifySizeName.ReplaceAllString(src, ".")
	return shopifySizeDims.ReplaceAllString(src, ".")
}

func upscaleEbay(src string) string {
	return ebaySizeToken.ReplaceAllString(src, "s-l1600")
}

func upscaleEtsy(src string) string {
	return etsySizeToken.ReplaceAllString(src, "il_fullxfull")
}

// hostOf extracts the lowercase host portion of a URL without requiring
// it to parse cleanly; detection must never fail on malformed input.
func hostOf(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	for _, sep := range []string{"/", "?", "#"} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return s
}
