package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after merging defaults, the config file,
CALLCTL_* environment variables, and command-line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		out, err := yaml.Marshal(app.cfg)
		if err != nil {
			return err
		}
		cmd.Printf("# effective configuration (api: %s)\n", app.cfg.APIBaseURL())
		cmd.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
