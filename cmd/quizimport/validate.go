package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atoile/micro_naija/docxparser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <questions.json|questions.yaml>",
		Short: "Check an edited question list",
		Long: "Check an edited question list. The file holds either a list of questions " +
			"or an object with a \"questions\" list.",
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	raw, err := questionsJSON(args[0], data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	result := docxparser.ValidateQuestionsJSON(raw)
	if !result.Valid {
		printErrors(cmd.ErrOrStderr(), result.Errors)
		return fmt.Errorf("%s: %d problem(s) found", args[0], len(result.Errors))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: all questions are valid\n", args[0])
	return nil
}

// questionsJSON returns the question list of a JSON or YAML document as JSON.
func questionsJSON(path string, data []byte) ([]byte, error) {
	var doc interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}

	if m, ok := doc.(map[string]interface{}); ok {
		doc = m["questions"]
	}
	return json.Marshal(doc)
}
