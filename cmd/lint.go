package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helmcode/codeclarity/pkg/analyzer"
	"github.com/helmcode/codeclarity/pkg/model"
)

var lintOutputFormat string

func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint FILE...",
		Short: "Ask for linting and formatting suggestions only",
		Long: `Send each file with the lint-only prompt and print the model's free-form
suggestions.

Examples:
  codeclarity lint app.py
  codeclarity lint -l Fortran solver.f90 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLint,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringVarP(&lintOutputFormat, "output", "o", "human", "Output format (human, json, yaml)")

	return cmd
}

func runLint(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var requests []*model.AnalysisRequest
	for _, path := range args {
		req, err := a.request(path, model.LintOnly)
		if err != nil {
			return err
		}
		requests = append(requests, req)
	}

	failed := 0
	for _, req := range requests {
		suggestions, err := a.lint(cmd.Context(), req)
		if err != nil {
			if !analyzer.IsAnalysisFailure(err) {
				return err
			}
			a.fail(err)
			failed++
			continue
		}
		if err := a.displayLint(req.Filename(), suggestions, lintOutputFormat); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be linted", failed, len(requests))
	}
	return nil
}
