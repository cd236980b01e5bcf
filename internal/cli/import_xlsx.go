package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/database/words"
	"github.com/mrlokans/jianjin/internal/importers"
)

func newImportXLSXCommand(load ConfigLoader) *cobra.Command {
	var file, username, sheet string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-xlsx",
		Short: "Import words from a spreadsheet",
		Long: `Import words from the first sheet of an .xlsx file (or --sheet).

The first row is a header. Columns, in order:
  word | pinyin | definition | part_of_speech | tags | notes

Several definitions may be separated by ";" and tags by ",".
Words the user already has are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			converter, err := importers.OpenXLSX(file, sheet)
			if err != nil {
				return err
			}

			if dryRun {
				rows, _ := converter.Convert()
				heading.Fprintf(out, "Dry run: %d rows in %s\n", len(rows), file)
				for _, row := range rows {
					fmt.Fprintf(out, "  %d. %s %s\n", row.Row, row.Word, row.Pinyin)
				}
				return nil
			}

			db, cfg, err := openDatabase(load)
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := auth.NewService(db.DB, cfg.Auth).GetUserByUsername(username)
			if err != nil {
				return fmt.Errorf("user %q: %w", username, err)
			}

			result, err := importers.NewPipeline(words.NewRepository(db.DB)).Import(user.ID, converter)
			if err != nil {
				return fmt.Errorf("import stopped after %d rows: %w", result.Processed, err)
			}

			heading.Fprintf(out, "Imported %s for %s\n", file, user.Username)
			printSuccess(out, "  created: %d", result.Created)
			fmt.Fprintf(out, "  skipped: %d (already present)\n", result.Skipped)
			if len(result.Errors) > 0 {
				printWarning(out, "  rejected: %d", len(result.Errors))
				for _, msg := range result.Errors {
					printWarning(out, "    %s", msg)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the .xlsx file (required)")
	cmd.Flags().StringVar(&username, "user", "", "username that will own the words (required unless --dry-run)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name, defaults to the first sheet")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the rows without saving")
	_ = cmd.MarkFlagRequired("file")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !dryRun && username == "" {
			return fmt.Errorf("required flag \"user\" not set")
		}
		return nil
	}
	return cmd
}
