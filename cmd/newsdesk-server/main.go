package main

import (
	"log"

	"github.com/MrSnakeDoc/newsdesk/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ newsdesk-server failed to start: %v", err)
	}
}
