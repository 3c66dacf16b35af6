package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/brieflist/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(app), newConfigInitCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConnect: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 12)
			for _, kv := range app.Config.Summary() {
				value := kv[1]
				if value == "" {
					value = formatter.Dim("(unset)")
				}
				rows = append(rows, []string{kv[0], value})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"SETTING", "VALUE"}, rows))
			return nil
		},
	}
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the current configuration to the config file",
		Long:        "Write the current configuration to the config file. Secrets are not written.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConnect: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.configPath
			if path == "" {
				return fmt.Errorf("no config path; pass --config")
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := app.Config.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
