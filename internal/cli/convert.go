package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	uiio "github.com/matzehuels/uiforge/pkg/io"
)

// convertCommand re-saves a document, optionally in another format.
func (c *CLI) convertCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-save a document as JSON or TOML",
		Long: `Load a document and write it back out. The output format follows the
extension of --output, or --format when writing to stdout.

Loading fills missing alignment and margins with defaults and exporting
derives complete margins from the imported geometry, so converting also
normalizes a document. Use --absolute to rewrite every element with
left/top alignment.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			d, closer, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer closer()
			logger.Debugf("Loaded %s: %d elements", args[0], d.Len())

			f, err := outputFormat(output, format)
			if err != nil {
				return err
			}
			out, err := c.openOutput(output)
			if err != nil {
				return err
			}
			if err := uiio.Write(uiio.FileOf(d), out, f); err != nil {
				out.Close()
				return err
			}
			if err := out.Close(); err != nil {
				return err
			}
			if output != "" {
				printSuccess("Converted %s", args[0])
				printFile(output)
				printNextStep("Render it", fmt.Sprintf("%s render %s", appName, output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format when writing to stdout: json (default), toml")

	return cmd
}

// outputFormat picks the codec from the output extension, falling back to
// the explicit format (or JSON) for stdout.
func outputFormat(output, format string) (uiio.Format, error) {
	if output != "" && output != "-" {
		f, err := uiio.FormatFor(output)
		if err != nil {
			return 0, fmt.Errorf("output: %w", err)
		}
		return f, nil
	}
	if format == "" {
		return uiio.FormatJSON, nil
	}
	return uiio.ParseFormat(format)
}
