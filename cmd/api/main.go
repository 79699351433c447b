package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"leave-backend/config"
	"leave-backend/internal/logger"
	"leave-backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Infow("Mencoba koneksi ke Database...")
	db, err := config.ConnectDB(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalw("Database connection failed", "error", err)
	}

	app := fiber.New()

	// Middleware Global
	app.Use(cors.New())        // Agar API bisa diakses dari domain/port lain
	app.Use(fiberlogger.New()) // Agar log request muncul di terminal

	if err := routes.Setup(app, db, cfg, log); err != nil {
		log.Fatalw("Route setup failed", "error", err)
	}

	log.Infow("Server siap", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalw("Server stopped", "error", err)
	}
}
