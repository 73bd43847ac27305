package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage configuration backups",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/backups"); err != nil {
			return err
		}

		list, err := pbx.NewBackups(app.client).List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, b := range list {
			rows = append(rows, []string{
				b.ID,
				b.Status,
				strconv.FormatInt(b.SizeBytes, 10),
				b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}
		writeTable(cmd.OutOrStdout(), []string{"ID", "STATUS", "SIZE", "CREATED"}, rows)
		return nil
	},
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Start a new backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/backups"); err != nil {
			return err
		}

		created, err := pbx.NewBackups(app.client).Create(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Backup %s started (%s)\n", created.ID, created.Status)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a stored backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/backups"); err != nil {
			return err
		}

		if err := pbx.NewBackups(app.client).Restore(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Restore of %s requested\n", args[0])
		return nil
	},
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
