package main

import (
	"skillsync/internal/delivery/http/dto"
	"skillsync/internal/usecase"

	"github.com/spf13/cobra"
)

type scanFlags struct {
	major  string
	gpa    float64
	skills []string
}

func (f *scanFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.major, "major", "", "Field of study used to build the search query")
	cmd.Flags().Float64Var(&f.gpa, "gpa", 0, "GPA; 3.0 and above earns a scholarship score bonus")
	cmd.Flags().StringSliceVar(&f.skills, "skills", nil, "Comma separated skills for the internship query")
}

func (f *scanFlags) profile() usecase.ScanProfile {
	return usecase.ScanProfile{Major: f.major, GPA: f.gpa, Skills: f.skills}
}

func newScanCmd(withEnv envRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scrape scholarship and internship listings",
	}

	var sf scanFlags
	scholarships := &cobra.Command{
		Use:   "scholarships",
		Short: "Scan the scholarship directory",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
			items, err := e.usecases.Opportunities.ScanScholarships(cmd.Context(), sf.profile())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewOpportunityResponses(items))
		}),
	}
	sf.bind(scholarships)

	var inf scanFlags
	internships := &cobra.Command{
		Use:   "internships",
		Short: "Search the web for internship postings",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
			items, err := e.usecases.Opportunities.ScanInternships(cmd.Context(), inf.profile())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewOpportunityResponses(items))
		}),
	}
	inf.bind(internships)

	var af scanFlags
	all := &cobra.Command{
		Use:   "all",
		Short: "Run both scans concurrently",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
			res, err := e.usecases.Opportunities.ScanAll(cmd.Context(), af.profile())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.ScanAllResponse{
				Scholarships: dto.NewOpportunityResponses(res.Scholarships),
				Internships:  dto.NewOpportunityResponses(res.Internships),
			})
		}),
	}
	af.bind(all)

	cmd.AddCommand(scholarships, internships, all)
	return cmd
}
