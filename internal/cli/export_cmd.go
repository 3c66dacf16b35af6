package cli

import (
	"fmt"

	"github.com/alexanderramin/brieflist/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var dest, format string
	var ask bool

	cmd := &cobra.Command{
		Use:   "export [company]",
		Short: "Research a company and write a report file",
		Long: "Research a company and write <company>-financials.md (or .html) to a\n" +
			"directory or an s3://bucket/prefix destination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := companyArg(app, args)
			if err != nil {
				return err
			}
			if dest == "" {
				dest = app.Config.Export.Dir
			}
			if format == "" {
				format = app.Config.Export.Format
			}
			if ask && app.IsInteractive() {
				if err := exportForm(&dest, &format).Run(); err != nil {
					return err
				}
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			res, err := lookupCompany(cmd, app, name)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			target, err := export.Open(ctx, dest, app.Config.Export.S3)
			if err != nil {
				return err
			}
			loc, err := export.Export(ctx, target, name, res, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", loc)
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "to", "", "Directory or s3://bucket/prefix (default from export.dir)")
	cmd.Flags().StringVar(&format, "format", "", "Report format: md or html (default from export.format)")
	cmd.Flags().BoolVarP(&ask, "interactive", "i", false, "Prompt for destination and format")
	return cmd
}
