// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL), migrations
//	├── words/           # Words and their nested definitions, sentences, tags, relations
//	└── tags/            # Tag listing and orphan sweeping
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.Open(cfg.Database)
//
//	wordsRepo := words.NewRepository(db.DB)
//	tagsRepo := tags.NewRepository(db.DB)
//
//	word, err := wordsRepo.Get(userID, 123)
//	userTags, err := tagsRepo.ListForUser(userID)
//
// # Interface Implementations
//
//   - words.Repository: implements http.WordStore
//   - tags.Repository: implements http.TagStore and tasks.OrphanTagsCleaner
//
// # Drivers
//
// DATABASE_DRIVER selects "sqlite" (default, DATABASE_PATH) or "postgres"
// (DATABASE_URL). Related-word and word-tag join tables are declared
// explicitly so both drivers share the same schema.
package database
