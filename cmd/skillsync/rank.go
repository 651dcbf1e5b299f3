package main

import (
	"context"
	"fmt"

	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/domain/matching"

	"github.com/spf13/cobra"
)

func newRankCmd(withEnv envRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank students for a role, or roles for a student",
		Long:  "Prints match results ordered by match percentage. Without a database the in-memory store is filled with demo data first.",
	}

	rank := func(fn func(ctx context.Context, e *env, id string) ([]matching.Result, error)) envCmd {
		return func(cmd *cobra.Command, e *env, args []string) error {
			if e.inMemory() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: no database configured, ranking demo data")
				if err := seedDemo(cmd.Context(), e); err != nil {
					return err
				}
			}
			results, err := fn(cmd.Context(), e, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewMatchResponses(results))
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "role <role-id>",
			Short: "Rank every student against a role",
			Args:  cobra.ExactArgs(1),
			RunE: withEnv(rank(func(ctx context.Context, e *env, id string) ([]matching.Result, error) {
				return e.usecases.Matching.RankStudentsForRole(ctx, id)
			})),
		},
		&cobra.Command{
			Use:   "student <student-id>",
			Short: "Rank every active role for a student",
			Args:  cobra.ExactArgs(1),
			RunE: withEnv(rank(func(ctx context.Context, e *env, id string) ([]matching.Result, error) {
				return e.usecases.Matching.RankRolesForStudent(ctx, id)
			})),
		},
	)
	return cmd
}
