package main

import (
	"flag"
	"log"
	"os"

	"VaderBoot/internal/di"
	"VaderBoot/pkg/config"

	"github.com/joho/godotenv"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	envPath := flag.String("env", ".env", "dotenv file path")
	flag.Parse()

	// A missing .env is fine; real environment variables still apply.
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv: %v", err)
	}

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s provider=%s port=%d", cfg.Environment, cfg.Provider.Type, cfg.Server.Port)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
