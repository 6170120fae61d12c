package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/referendum-atlas/referendum-atlas/internal/config"
	"github.com/referendum-atlas/referendum-atlas/internal/parser"
	"github.com/referendum-atlas/referendum-atlas/internal/pipeline"
	"github.com/referendum-atlas/referendum-atlas/internal/render"
)

func setup() (*pipeline.Service, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// An optional positional argument overrides the data directory.
	if len(os.Args) > 1 {
		cfg.DataDir = os.Args[1]
	}

	service := pipeline.NewService(parser.NewLoader(), render.NewSVGRenderer(), *cfg, os.Stdout)
	return service, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	startTime := time.Now()

	service, err := setup()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Starting referendum analysis...")
	if err := service.Execute(); err != nil {
		log.Fatalf("Error during analysis: %v\n", err)
	}

	log.Println("Referendum analysis finished.")
	log.Printf("Execution time: %s\n", time.Since(startTime))
}
