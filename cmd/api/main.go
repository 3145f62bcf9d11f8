package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"product-extractor/extractor"
	"product-extractor/importer"
	"product-extractor/internal/types"
)

// ExtractRequest represents the request body for the extract endpoint
type ExtractRequest struct {
	URLs []string `json:"urls"`
}

// ExtractResponse represents the response from the extract endpoint
type ExtractResponse struct {
	Success bool               `json:"success"`
	Data    []extractor.Result `json:"data,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// ImportRequest represents the request body for the import endpoint
type ImportRequest struct {
	Products []types.UnifiedProduct `json:"products"`
}

// ImportResponse represents the response from the import endpoint
type ImportResponse struct {
	Success bool              `json:"success"`
	Data    *importer.Summary `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Server holds the API server configuration
type Server struct {
	logger *logrus.Logger
	config *types.Config
}

// NewServer creates a new API server
func NewServer() *Server {
	// Load .env file if present
	_ = godotenv.Load()

	// Setup logging
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Server{
		logger: logger,
		config: types.DefaultConfig(),
	}
}

// handleExtract handles the extraction API endpoint
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	// Handle preflight requests
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	// Only allow POST requests
	if r.Method != "POST" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request body
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var urls []string
	for _, u := range req.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		s.sendError(w, "No URLs provided", http.StatusBadRequest)
		return
	}

	s.logger.Infof("API request received for %d URL(s)", len(urls))

	// Create context with timeout
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	engine := extractor.NewEngine(s.config, s.logger)
	defer engine.Close()

	results, errs := engine.ExtractAll(ctx, urls)

	response := ExtractResponse{
		Success: true,
		Data:    results,
	}
	for _, err := range errs {
		response.Errors = append(response.Errors, err.Error())
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// handleImport handles the bulk import API endpoint
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Products) == 0 {
		s.sendError(w, "No products provided", http.StatusBadRequest)
		return
	}

	s.logger.Infof("Import request received for %d product(s)", len(req.Products))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()

	// The downstream sink is pluggable; this server logs each delivery.
	im := importer.New(s.config, s.logger, func(ctx context.Context, product types.UnifiedProduct) error {
		s.logger.Debugf("Imported product %s (%s)", product.ExternalID, product.Title)
		return nil
	})

	summary := im.Import(ctx, req.Products)

	response := ImportResponse{
		Success: summary.Failed == 0,
		Data:    &summary,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	response := ExtractResponse{
		Success: false,
		Error:   message,
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Errorf("Failed to encode error response: %v", err)
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Start starts the API server
func (s *Server) Start(port string) error {
	// Setup routes
	http.HandleFunc("/extract", s.handleExtract)
	http.HandleFunc("/import", s.handleImport)
	http.HandleFunc("/health", s.handleHealth)

	s.logger.Infof("Starting API server on port %s", port)
	s.logger.Info("Available endpoints:")
	s.logger.Info("  POST /extract - Extract products from a list of URLs")
	s.logger.Info("  POST /import  - Bulk-import normalized products")
	s.logger.Info("  GET  /health  - Health check")

	return http.ListenAndServe(":"+port, nil)
}

func main() {
	// Get port from environment variable, default to 8080
	serverPort := "8080"
	if envPort := os.Getenv("API_PORT"); envPort != "" {
		serverPort = envPort
		fmt.Printf("Using port from environment variable API_PORT: %s\n", serverPort)
	} else {
		fmt.Printf("No API_PORT environment variable found, using default: %s\n", serverPort)
	}

	// Create and start server
	server := NewServer()

	// Start the server
	log.Printf("Starting API server on port %s", serverPort)
	log.Fatal(server.Start(serverPort))
}
