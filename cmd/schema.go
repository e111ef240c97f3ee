package cmd

import (
	"encoding/json"
	"path/filepath"
	"reflect"

	"github.com/favigo/favigo/favicon"
	"github.com/favigo/favigo/overrides"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("overrides", "O", false, "Generate the JSON Schema of the acquisition overrides instead")
}

// schemaCmd prints the JSON schema of structured outputs.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the --json report",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("overrides")) {
			schema = reflector.Reflect(&overrides.Overrides{})
		} else {
			schema = reflector.Reflect(&favicon.Report{})
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
