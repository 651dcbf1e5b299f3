package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(withEnv envRunner) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long:  "Applies V<version>__<name>.sql migrations in order. Uses the migrations embedded in the binary unless --dir is given.",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Read migrations from this directory instead of the embedded set")

	cmd.RunE = withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		if e.inMemory() {
			fmt.Fprintln(cmd.OutOrStdout(), "no database configured, nothing to migrate")
			return nil
		}
		n, err := e.container.Migrate(cmd.Context(), dir)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied\n", n)
		return nil
	})
	return cmd
}
