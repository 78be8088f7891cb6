package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"Polashi/config"
	"Polashi/controllers"
	"Polashi/middleware"
	"Polashi/routes"
	"Polashi/services/archive"
	"Polashi/services/redis"
	"Polashi/services/rooms"
	"Polashi/services/socket_io"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// PostgreSQL backs the match archive only; the server runs fine
	// without it for local play.
	var gormDB *gorm.DB
	if os.Getenv("POSTGRES_HOST") != "" {
		db, err := config.ConnectGORM()
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		gormDB = db
		log.Println("GORM connected")

		if os.Getenv("MIGRATE_POSTGRES") == "true" {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Printf("Warning: database migration failed: %v", err)
			}
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()
	} else {
		log.Println("POSTGRES_HOST not set, match archive disabled")
	}

	// Redis backs the room directory behind the REST preview endpoint.
	var redisClient *redis.RedisClient
	if os.Getenv("REDIS_URL") != "" {
		rc, err := config.ConnectRedis()
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		redisClient = rc
		defer redis.CloseRedis(redisClient)
	} else {
		log.Println("REDIS_URL not set, room directory disabled")
	}

	registry := rooms.NewRegistry()
	archiveManager := archive.NewManager(gormDB)

	r := gin.Default()
	middleware.SetUpMiddleware(r)

	var directory controllers.RoomDirectory
	if redisClient != nil {
		directory = redisClient
	}
	routes.SetupRoutes(r, directory)

	sio := &socket_io.MySocketServer{}
	sio.Start(r, registry, redisClient, archiveManager)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
