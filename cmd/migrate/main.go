package main

import (
	"log"

	"rich-notes-be/internal/config"
	"rich-notes-be/internal/pkg/logger"
	"rich-notes-be/pkg/database"
)

func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, sysLogger.Zap())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for notes...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	// Backs the newest-first listing per user.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_notes_user_updated ON notes (user_id, updated_at DESC)`).Error; err != nil {
		log.Printf("Warn: Failed to create index: %v", err)
	}

	log.Println("Migration complete")
}
