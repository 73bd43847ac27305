package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/pbx"
)

var (
	reportsFlagExtension string
	reportsFlagPerPage   int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Summarize call activity",
	Long: `Aggregates the call records into a short report: answer rate, the
busiest hour of the day, and the origins missing the most calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.requireSession(cmd.Context(), "/reports"); err != nil {
			return err
		}

		calls, err := pbx.NewCalls(app.client).List(cmd.Context(), pbx.CallFilter{
			Extension: reportsFlagExtension,
			PerPage:   reportsFlagPerPage,
		})
		if err != nil {
			return err
		}

		report := pbx.BuildCallReport(calls)

		cmd.Printf("Calls:        %d\n", report.Total)
		cmd.Printf("Answered:     %d\n", report.Answered)
		cmd.Printf("Missed:       %d\n", report.Missed)
		cmd.Printf("Answer rate:  %.0f%%\n", report.AnswerRate*100)
		if report.PeakHour >= 0 {
			cmd.Printf("Peak hour:    %02d:00-%02d:59 (%d calls)\n",
				report.PeakHour, report.PeakHour, report.PeakHourCalls)
		}

		if len(report.MissedByOrigin) > 0 {
			cmd.Println()
			rows := make([][]string, 0, len(report.MissedByOrigin))
			for _, e := range report.MissedByOrigin {
				rows = append(rows, []string{e.Value, strconv.Itoa(e.Count)})
			}
			writeTable(cmd.OutOrStdout(), []string{"ORIGIN", "MISSED"}, rows)
		}
		return nil
	},
}

func init() {
	reportsCmd.Flags().StringVar(&reportsFlagExtension, "extension", "", "limit to one extension")
	reportsCmd.Flags().IntVar(&reportsFlagPerPage, "per-page", 0, "how many records to aggregate")
	rootCmd.AddCommand(reportsCmd)
}
