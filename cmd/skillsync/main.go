// Command skillsync runs maintenance and batch jobs against the SkillSync
// stores: schema migrations, demo seeding, opportunity scans and ranking.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(openEnv).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// envCmd is a subcommand body that needs an open env.
type envCmd func(cmd *cobra.Command, e *env, args []string) error

type envRunner func(run envCmd) func(*cobra.Command, []string) error

func newRootCmd(open opener) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "skillsync",
		Short:         "SkillSync maintenance CLI",
		Long:          "Runs migrations, seeds demo data, scans scholarship and internship listings and ranks matches from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write logs to stdout")

	var withEnv envRunner = func(run envCmd) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			e, err := open(cmd.Context(), verbose)
			if err != nil {
				return err
			}
			defer e.Close()
			return run(cmd, e, args)
		}
	}

	root.AddCommand(
		newMigrateCmd(withEnv),
		newSeedCmd(withEnv),
		newScanCmd(withEnv),
		newRankCmd(withEnv),
	)
	return root
}
