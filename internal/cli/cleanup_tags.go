package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/jianjin/internal/database/tags"
	"github.com/mrlokans/jianjin/internal/tasks"
)

func newCleanupTagsCommand(load ConfigLoader) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cleanup-tags",
		Short: "Delete tags that are not attached to any word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			db, _, err := openDatabase(load)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := tags.NewRepository(db.DB)

			if dryRun {
				count, err := repo.CountOrphanTags()
				if err != nil {
					return fmt.Errorf("count orphan tags: %w", err)
				}
				printWarning(out, "%d orphan tags would be deleted", count)
				return nil
			}

			deleted, err := tasks.CleanupOrphanTags(repo)
			if err != nil {
				return err
			}
			printSuccess(out, "Deleted %d orphan tags", deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only count orphan tags")
	return cmd
}
