package main

import (
	"log"

	"github.com/ecocycle-dz/ecocycle/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ ecocycle failed to start: %v", err)
	}
}
