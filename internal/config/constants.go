package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./jianjin.db"

	// DefaultTagCleanupSchedule sweeps orphan tags hourly at :15
	DefaultTagCleanupSchedule = "15 * * * *"

	DefaultPageSize = 10
	MaxPageSize     = 100
)
