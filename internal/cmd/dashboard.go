package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
	"github.com/grandcallpro/callctl/internal/tui"
)

var dashboardFlagWatch bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard summary",
	Long: `Prints the dashboard cards and the latest calls. With --watch the
dashboard stays open and refreshes every few seconds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/dashboard"); err != nil {
			return err
		}

		svc := pbx.NewDashboard(app.client)

		if dashboardFlagWatch {
			monitor := tui.NewMonitor(cmd.Context(), app.manager, svc)
			_, err := tea.NewProgram(monitor, tea.WithContext(cmd.Context())).Run()
			return err
		}

		dash, err := svc.Get(cmd.Context())
		if err != nil {
			return err
		}

		for _, card := range dash.Cards {
			if card.PercentualDifference != "" {
				cmd.Printf("%-24s %s (%s)\n", card.Title, card.Content, card.PercentualDifference)
			} else {
				cmd.Printf("%-24s %s\n", card.Title, card.Content)
			}
		}
		if len(dash.Cards) > 0 && len(dash.Calls) > 0 {
			cmd.Println()
		}
		writeTable(cmd.OutOrStdout(),
			[]string{"ORIGIN", "DESTINY", "STATUS", "WHEN", "DURATION"}, callRows(dash.Calls))
		return nil
	},
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardFlagWatch, "watch", false, "keep the dashboard open and refresh it")
	rootCmd.AddCommand(dashboardCmd)
}
