package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helmcode/codeclarity/pkg/model"
)

func NewLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their file extensions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, l := range model.Languages() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s .%s\n", l.Label, l.Extension)
			}
		},
	}
}
