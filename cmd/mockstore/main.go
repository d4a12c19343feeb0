package main

import (
	"log"

	"eduquest/config"
	"eduquest/mockstore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := mockstore.OpenDB(cfg)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	app := mockstore.New(db)

	log.Printf("Mock data store listening on :%s", cfg.MockstorePort)
	log.Fatal(app.Listen(":" + cfg.MockstorePort))
}
