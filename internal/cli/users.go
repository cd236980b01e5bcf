package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/jianjin/internal/auth"
)

// PasswordEnv is read when --password is not given, keeping the password
// out of shell history.
const PasswordEnv = "JIANJIN_PASSWORD"

func passwordFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(PasswordEnv); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("password is required: pass --password or set %s", PasswordEnv)
}

func newCreateUserCommand(load ConfigLoader) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account that can sign in to the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}

			db, cfg, err := openDatabase(load)
			if err != nil {
				return err
			}
			defer db.Close()

			user, err := auth.NewService(db.DB, cfg.Auth).CreateUser(username, email, pw)
			if err != nil {
				return fmt.Errorf("create user %q: %w", username, err)
			}

			printSuccess(cmd.OutOrStdout(), "Created user %s (id %d)", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 12 characters (or set "+PasswordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSetPasswordCommand(load ConfigLoader) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Replace the password of an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}

			db, cfg, err := openDatabase(load)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := auth.NewService(db.DB, cfg.Auth).SetPassword(username, pw); err != nil {
				return fmt.Errorf("set password for %q: %w", username, err)
			}

			printSuccess(cmd.OutOrStdout(), "Password updated for %s", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "new password (or set "+PasswordEnv+")")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
