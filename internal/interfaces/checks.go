package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/database/tags"
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/http"
	"github.com/mrlokans/jianjin/internal/importers"
	"github.com/mrlokans/jianjin/internal/scheduler"
	"github.com/mrlokans/jianjin/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// WordStore implementations
var _ http.WordStore = (*words.Repository)(nil)
var _ http.WordSearcher = (*words.Repository)(nil)
var _ http.ConfidenceStore = (*words.Repository)(nil)

// TagStore implementations
var _ http.TagStore = (*tags.Repository)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.OrphanTagsCleaner = (*tags.Repository)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)

// =============================================================================
// Import Pipeline
// =============================================================================

// Converter implementations
var _ importers.Converter = (*importers.XLSXConverter)(nil)

// WordCreator implementations
var _ importers.WordCreator = (*words.Repository)(nil)
