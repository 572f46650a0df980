package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/internmatch/go-recommender/api"
	"github.com/internmatch/go-recommender/config"
	"github.com/internmatch/go-recommender/internal/engine"
)

func main() {
	// Define command-line flags
	var (
		help     = flag.Bool("help", false, "Show help message")
		version  = flag.Bool("version", false, "Show version information")
		port     = flag.String("port", "8080", "Port to run the server on")
		cacheDir = flag.String("cache-dir", "", "Directory for the similarity index cache (overrides TFIDF_DIR)")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Internship Recommender - rule and similarity based internship matching\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --cache-dir /tmp/tfidf     # Use custom index cache directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Internship Recommender v1.0.0\n")
		fmt.Printf("Weighted rule scoring blended with TF-IDF similarity\n")
		return
	}

	// Optional .env file; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	settings := config.FromEnv()
	if *cacheDir != "" {
		settings.CacheDir = *cacheDir
	}
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize the recommendation engine
	log.Printf("Using index cache directory: %s", settings.CacheDir)
	recommenderEngine := engine.NewEngine(settings)
	defer recommenderEngine.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		log.Printf("Warning: ADMIN_TOKEN not set, admin routes are unprotected")
	}
	api.SetupRoutes(router, recommenderEngine, adminToken)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
