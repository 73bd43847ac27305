package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "Inspect call records",
}

var (
	callsFlagStatus    string
	callsFlagExtension string
	callsFlagSearch    string
	callsFlagPage      int
	callsFlagPerPage   int
)

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List call records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/calls"); err != nil {
			return err
		}

		list, err := pbx.NewCalls(app.client).List(cmd.Context(), pbx.CallFilter{
			Status:    callsFlagStatus,
			Extension: callsFlagExtension,
			Page:      callsFlagPage,
			PerPage:   callsFlagPerPage,
		})
		if err != nil {
			return err
		}

		if callsFlagSearch != "" {
			list = pbx.SearchCalls(list, callsFlagSearch)
		}
		pbx.SortByTimestamp(list)

		writeTable(cmd.OutOrStdout(),
			[]string{"ORIGIN", "DESTINY", "STATUS", "WHEN", "DURATION"}, callRows(list))
		return nil
	},
}

var callsActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "List calls in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/calls"); err != nil {
			return err
		}

		list, err := pbx.NewCalls(app.client).Active(cmd.Context())
		if err != nil {
			return err
		}
		writeTable(cmd.OutOrStdout(),
			[]string{"ORIGIN", "DESTINY", "STATUS", "WHEN", "DURATION"}, callRows(list))
		return nil
	},
}

func callRows(calls []pbx.Call) [][]string {
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			c.Origin.Value,
			c.Destiny.Value,
			c.Status.Value,
			c.Timestamp.Local().Format("2006-01-02 15:04:05"),
			c.Duration,
		})
	}
	return rows
}

func init() {
	callsListCmd.Flags().StringVar(&callsFlagStatus, "status", "", "filter: answered or missed")
	callsListCmd.Flags().StringVar(&callsFlagExtension, "extension", "", "filter by extension number")
	callsListCmd.Flags().StringVar(&callsFlagSearch, "search", "", "match origin or destiny")
	callsListCmd.Flags().IntVar(&callsFlagPage, "page", 0, "result page")
	callsListCmd.Flags().IntVar(&callsFlagPerPage, "per-page", 0, "results per page")

	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsActiveCmd)
	rootCmd.AddCommand(callsCmd)
}
