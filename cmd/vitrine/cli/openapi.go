package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vitrinecms/vitrine/internal/openapi"
)

func newOpenAPICmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the OpenAPI specification",
		Long: `Export the OpenAPI 3 specification for the Vitrine API, the same
document the running server serves at /openapi.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := openapi.Generate()

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = json.MarshalIndent(doc, "", "  ")
			case "yaml":
				// Round-trip through JSON so the kin-openapi MarshalJSON
				// methods shape the document before YAML encoding.
				var raw []byte
				raw, err = json.Marshal(doc)
				if err == nil {
					var tree map[string]interface{}
					if err = json.Unmarshal(raw, &tree); err == nil {
						data, err = yaml.Marshal(tree)
					}
				}
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode spec: %w", err)
			}

			if output == "" || output == "-" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("OpenAPI spec written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
