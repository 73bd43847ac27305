package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "Manage PBX extensions",
}

var extensionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extensions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/extensions"); err != nil {
			return err
		}

		list, err := pbx.NewExtensions(app.client).List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, e := range list {
			rows = append(rows, []string{e.ID, e.Number, e.Name, e.Department})
		}
		writeTable(cmd.OutOrStdout(), []string{"ID", "NUMBER", "NAME", "DEPARTMENT"}, rows)
		return nil
	},
}

var (
	extensionFlagNumber     string
	extensionFlagName       string
	extensionFlagDepartment string
)

var extensionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an extension",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/extensions"); err != nil {
			return err
		}

		created, err := pbx.NewExtensions(app.client).Create(cmd.Context(), pbx.ExtensionInput{
			Number:     extensionFlagNumber,
			Name:       extensionFlagName,
			Department: extensionFlagDepartment,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Created extension %s (%s)\n", created.Number, created.ID)
		return nil
	},
}

var extensionsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/extensions"); err != nil {
			return err
		}

		updated, err := pbx.NewExtensions(app.client).Update(cmd.Context(), args[0], pbx.ExtensionInput{
			Number:     extensionFlagNumber,
			Name:       extensionFlagName,
			Department: extensionFlagDepartment,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Updated extension %s\n", updated.ID)
		return nil
	},
}

var extensionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an extension",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/extensions"); err != nil {
			return err
		}

		if err := pbx.NewExtensions(app.client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted extension %s\n", args[0])
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{extensionsCreateCmd, extensionsUpdateCmd} {
		c.Flags().StringVar(&extensionFlagNumber, "number", "", "extension number")
		c.Flags().StringVar(&extensionFlagName, "name", "", "display name")
		c.Flags().StringVar(&extensionFlagDepartment, "department", "", "department")
	}

	extensionsCmd.AddCommand(extensionsListCmd)
	extensionsCmd.AddCommand(extensionsCreateCmd)
	extensionsCmd.AddCommand(extensionsUpdateCmd)
	extensionsCmd.AddCommand(extensionsDeleteCmd)
	rootCmd.AddCommand(extensionsCmd)
}
