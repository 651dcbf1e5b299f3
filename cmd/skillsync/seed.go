package main

import (
	"context"
	"fmt"

	"skillsync/internal/database/seeder"
	"skillsync/internal/domain/user"
	"skillsync/internal/usecase/auth"

	"github.com/spf13/cobra"
)

func newSeedCmd(withEnv envRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo students, a recruiter and open roles",
		Long:  "Seeds demo data. Records that already exist are left untouched, so the command can be re-run.",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		if e.inMemory() {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: no database configured, seeding the in-memory store only")
		}
		if err := seedDemo(cmd.Context(), e); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "demo data seeded")
		return printDemoIDs(cmd, e)
	})
	return cmd
}

// printDemoIDs lists the ids to pass to "rank". Demo ids are derived from
// the demo emails and titles, so they do not change between runs.
func printDemoIDs(cmd *cobra.Command, e *env) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	students, err := e.container.Repos.Users.ListByRole(ctx, user.RoleStudent)
	if err != nil {
		return err
	}
	for _, s := range students {
		fmt.Fprintf(out, "student %s  %s\n", s.ID, s.FullName)
	}

	recruiter, err := e.container.Repos.Users.GetByEmail(ctx, seeder.RecruiterEmail)
	if err != nil {
		return err
	}
	roles, err := e.container.Repos.Roles.ListByRecruiter(ctx, recruiter.ID)
	if err != nil {
		return err
	}
	for _, r := range roles {
		fmt.Fprintf(out, "role    %s  %s\n", r.ID, r.Title)
	}
	return nil
}

func seedDemo(ctx context.Context, e *env) error {
	c := e.container
	if c.DB != nil {
		if err := seeder.EnsureSchema(ctx, c.DB); err != nil {
			return fmt.Errorf("check schema (run migrate first): %w", err)
		}
	}

	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: e.logger.Named("seeder")}
	return r.Run(ctx, seeder.Store{
		Users:        c.Repos.Users,
		Roles:        c.Repos.Roles,
		HashPassword: auth.HashPassword,
	})
}
