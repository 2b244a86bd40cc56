package main

import (
	"flag"
	"log"

	"quizdeck/internal/config"
	"quizdeck/internal/database"
)

func main() {
	var (
		source = flag.String("source", "file://migrations", "migration source URL")
		down   = flag.Bool("down", false, "roll back the most recent migration instead of applying")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *down {
		if err := database.RollbackMigrations(*source, cfg.GetDSN()); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.Println("Rollback complete")
		return
	}

	if err := database.RunMigrations(*source, cfg.GetDSN()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
