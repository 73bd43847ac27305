package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
}

var usersFlagStatus string

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/users"); err != nil {
			return err
		}

		list, err := pbx.NewUsers(app.client).List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, u := range list {
			if usersFlagStatus != "" && u.Status != usersFlagStatus {
				continue
			}
			rows = append(rows, []string{u.ID, u.Name, u.Email, u.Department, u.Status, u.Level})
		}
		writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "DEPARTMENT", "STATUS", "LEVEL"}, rows)
		return nil
	},
}

var (
	userFlagName       string
	userFlagEmail      string
	userFlagDepartment string
	userFlagLevel      string
)

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/users"); err != nil {
			return err
		}

		created, err := pbx.NewUsers(app.client).Create(cmd.Context(), pbx.UserInput{
			Name:       userFlagName,
			Email:      userFlagEmail,
			Department: userFlagDepartment,
			Level:      userFlagLevel,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Created user %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/users"); err != nil {
			return err
		}

		updated, err := pbx.NewUsers(app.client).Update(cmd.Context(), args[0], pbx.UserInput{
			Name:       userFlagName,
			Email:      userFlagEmail,
			Department: userFlagDepartment,
			Level:      userFlagLevel,
		})
		if err != nil {
			return err
		}
		cmd.Printf("Updated user %s\n", updated.ID)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/users"); err != nil {
			return err
		}

		if err := pbx.NewUsers(app.client).Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	usersListCmd.Flags().StringVar(&usersFlagStatus, "status", "", "filter by status: active, pending, inactive")

	for _, c := range []*cobra.Command{usersCreateCmd, usersUpdateCmd} {
		c.Flags().StringVar(&userFlagName, "name", "", "full name")
		c.Flags().StringVar(&userFlagEmail, "email", "", "email address")
		c.Flags().StringVar(&userFlagDepartment, "department", "", "department")
		c.Flags().StringVar(&userFlagLevel, "level", "", "access level")
	}

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
	usersCmd.AddCommand(usersUpdateCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
