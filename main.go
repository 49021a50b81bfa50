package main

import (
	"log"
	"xlcompare/internal/config"
	"xlcompare/internal/tui"
)

func main() {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	if err := tui.Run(cfg); err != nil {
		log.Fatal("Error running comparator:", err)
	}
}
