// Package cli defines the jianjin command line.
package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrlokans/jianjin/internal/config"
	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/entrypoint"
)

// ConfigLoader returns the application configuration.
type ConfigLoader func() *config.Config

var (
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed, color.Bold)
	heading = color.New(color.Bold)
)

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprintf(w, format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	warning.Fprintf(w, format+"\n", args...)
}

// PrintError writes a failed command's error to w.
func PrintError(w io.Writer, err error) {
	failure.Fprintf(w, "Error: %v\n", err)
}

// NewRootCommand builds the jianjin command tree. Running it without a
// subcommand starts the server.
func NewRootCommand(version string, load ConfigLoader) *cobra.Command {
	serve := func(cmd *cobra.Command, args []string) error {
		entrypoint.Run(load(), version)
		return nil
	}

	root := &cobra.Command{
		Use:           "jianjin",
		Short:         "Chinese vocabulary notebook with weighted flashcards",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE:  serve,
		},
		newCreateUserCommand(load),
		newSetPasswordCommand(load),
		newImportXLSXCommand(load),
		newCleanupTagsCommand(load),
	)
	return root
}

func openDatabase(load ConfigLoader) (*database.Database, *config.Config, error) {
	cfg := load()
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, cfg, nil
}
