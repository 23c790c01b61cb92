package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/osse101/seedling/internal/config"
	"github.com/osse101/seedling/internal/database"
)

func main() {
	clearMessages := flag.Bool("messages", false, "also delete every message on the board")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	log.Printf("Resetting seedling state (driver %s)...\n", cfg.DBDriver)
	if err := store.ResetTreeState(ctx); err != nil {
		log.Fatalf("Failed to reset tree state: %v", err)
	}
	log.Println("Seedling reset to a fresh planting. A running server picks it up once its state cache expires.")

	if *clearMessages {
		log.Println("Deleting all messages...")
		if err := store.DeleteAllMessages(ctx); err != nil {
			log.Fatalf("Failed to delete messages: %v", err)
		}
		log.Println("Message board cleared.")
	}
}
