package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atoile/micro_naija/docxparser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file.docx>",
		Short: "Extract the questions of a .docx file",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringP("output", "o", "", "Write the questions to this file instead of stdout")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	questions, err := docxparser.ParseFile(args[0])
	if err != nil {
		return err
	}

	result := docxparser.ValidateQuestions(questions)
	if !result.Valid {
		printErrors(cmd.ErrOrStderr(), result.Errors)
		return fmt.Errorf("%s: %d problem(s) found", args[0], len(result.Errors))
	}

	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := writeQuestions(out, format, questions); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Successfully parsed %d questions\n", len(questions))
	return nil
}

func writeQuestions(w io.Writer, format string, questions []docxparser.ParsedQuestion) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(questions); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}

func printErrors(w io.Writer, errs []string) {
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
