package main

import (
	"database/sql"
	"flag"
	"log"
	"os"

	"eduface/app/config"
	"eduface/app/database"
)

func main() {
	log.Println("Starting schema migration...")

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.InitSchema(db); err != nil {
		log.Fatal("Schema migration failed: ", err)
	}

	// Extra SQL files can be applied on top of the base schema.
	flag.Parse()
	for _, file := range flag.Args() {
		executeSQLFile(db, file)
	}

	log.Println("Schema migration completed successfully!")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
