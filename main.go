package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/helmcode/codeclarity/cmd"
	"github.com/helmcode/codeclarity/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codeclarity",
		Short: "AI-powered source code explanations and reviews",
		Long: `codeclarity sends source files to a language model and reports what the code
does, how complex it is, likely vulnerabilities and SOLID-principle observations,
with JSON and PDF exports of every report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewLintCmd(),
		cmd.NewSessionCmd(),
		cmd.NewLanguagesCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codeclarity version %s\n", version)
		},
	}
}
