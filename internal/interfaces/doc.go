// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - WordStore: CRUD over a user's words and nested collections (internal/http/stores.go)
//   - WordSearcher: exact and substring search (internal/http/stores.go)
//   - ConfidenceStore: confidence scores and flashcard candidates (internal/http/stores.go)
//   - TagStore: tags attached to a user's words (internal/http/stores.go)
//
// All of them are implemented by the repositories in internal/database/words
// and internal/database/tags, and every method is scoped to one user.
//
// ## Background Work
//
//   - tasks.OrphanTagsCleaner: counts and deletes tags without words
//   - scheduler.Enqueuer: hands a task to the backlite queue
//
// ## Import Interfaces
//
//   - importers.Converter: turns a source file into RawWord rows
//   - importers.WordCreator: persists imported words
//
// # Compile-time Checks
//
// checks.go asserts every implementation at compile time.
package interfaces
