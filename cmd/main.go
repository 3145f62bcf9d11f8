package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"product-extractor/config"
	"product-extractor/extractor"
	"product-extractor/internal/types"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		urlFlag       = flag.String("url", "", "Single product URL to extract")
		urlsFlag      = flag.String("urls", "", "Comma-separated list of product URLs")
		outputFlag    = flag.String("output", "", "Output file path (default: stdout)")
		configFlag    = flag.String("config", "", "Path to YAML config file")
		requestDelay  = flag.Duration("delay", 1*time.Second, "Delay between requests")
		maxRetries    = flag.Int("retries", 3, "Maximum retry attempts")
		timeout       = flag.Duration("timeout", 30*time.Second, "Request timeout")
		maxConcurrent = flag.Int("concurrent", 3, "Maximum concurrent requests")
		useBrowser    = flag.Bool("browser", false, "Use headless browser for JavaScript-heavy sites")
		httpOnly      = flag.Bool("http-only", false, "Force plain HTTP fetching even if the config enables the browser")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *urlFlag == "" && *urlsFlag == "" {
		log.Fatal("Either --url or --urls flag is required")
	}
	if *urlFlag != "" && *urlsFlag != "" {
		log.Fatal("Cannot use both --url and --urls flags")
	}

	var urls []string
	if *urlFlag != "" {
		urls = []string{strings.TrimSpace(*urlFlag)}
	} else {
		for _, u := range strings.Split(*urlsFlag, ",") {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	}

	// Setup logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	// Configuration: file first, flags override
	var cfg *types.Config
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			logger.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		cfg = types.DefaultConfig()
	}
	cfg.RequestDelay = *requestDelay
	cfg.MaxRetries = *maxRetries
	cfg.Timeout = *timeout
	cfg.MaxConcurrentRequests = *maxConcurrent
	if *useBrowser {
		cfg.UseHeadlessBrowser = true
	}
	if *httpOnly {
		cfg.UseHeadlessBrowser = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	engine := extractor.NewEngine(cfg, logger)
	defer engine.Close()

	startTime := time.Now()
	logger.Infof("Starting extraction for %d URL(s)", len(urls))

	results, errs := engine.ExtractAll(ctx, urls)

	logger.Infof("Extraction completed in %v", time.Since(startTime))

	jsonData, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to marshal results: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Results written to: %s", *outputFlag)
	} else {
		fmt.Println(string(jsonData))
	}

	logger.Infof("Extracted %d/%d products successfully", len(results), len(urls))
	for _, err := range errs {
		logger.Warnf("Extraction error: %v", err)
	}
	if len(results) == 0 && len(errs) > 0 {
		os.Exit(1)
	}
}
