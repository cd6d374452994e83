package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasbreak/differ"
	"github.com/erraggy/oasbreak/internal/cliutil"
	"github.com/erraggy/oasbreak/internal/report"
)

func newRulesCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the breaking change types that can be detected",
		Long: `List every breaking change type with its default severity and description.
Pass names to 'check --rules' or INPUT_BREAKINGCHANGETYPES to restrict detection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			return writeRules(cmd, format, differ.Definitions())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json, or yaml")
	return cmd
}

func writeRules(cmd *cobra.Command, format report.Format, defs []differ.RuleDefinition) error {
	w := cmd.OutOrStdout()
	switch format {
	case report.FormatJSON:
		data, err := json.MarshalIndent(defs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to json: %w", err)
		}
		cliutil.Writef(w, "%s\n", data)
	case report.FormatYAML:
		data, err := yaml.Marshal(defs)
		if err != nil {
			return fmt.Errorf("marshaling to yaml: %w", err)
		}
		cliutil.Writef(w, "%s", data)
	default:
		for _, d := range defs {
			cliutil.Writef(w, "%-32s %-8s %s\n", d.Name, d.Severity, d.Description)
		}
	}
	return nil
}
