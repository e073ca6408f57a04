package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/face-rate/api-go/config"
	"github.com/face-rate/api-go/routes"
	"github.com/face-rate/api-go/storage"
	"github.com/face-rate/api-go/utils"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db := config.InitDB()

	// Profile pictures live in R2 when a bucket is configured
	var media storage.MediaStore
	mediaConfig := config.GetMediaConfig()
	if mediaConfig.AccountID != "" {
		media = storage.NewR2MediaStore(mediaConfig)
	} else {
		log.Println("No media bucket configured, storing images in memory")
		media = storage.NewMemoryMediaStore()
	}

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, media, utils.SystemClock())

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
