package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Read platform notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/notifications"); err != nil {
			return err
		}

		list, err := pbx.NewNotifications(app.client).List(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list))
		for _, n := range list {
			read := ""
			if n.ReadAt != nil {
				read = "read"
			}
			rows = append(rows, []string{
				n.ID,
				n.Title,
				n.CreatedAt.Local().Format("2006-01-02 15:04"),
				read,
			})
		}
		writeTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "WHEN", ""}, rows)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/notifications"); err != nil {
			return err
		}

		if err := pbx.NewNotifications(app.client).MarkRead(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Marked %s as read\n", args[0])
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	rootCmd.AddCommand(notificationsCmd)
}
