package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quizimport",
		Short:        "Extract and check multiple-choice questions from Word documents",
		SilenceUsage: true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func Execute() error {
	return rootCmd.Execute()
}
