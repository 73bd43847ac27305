package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grandcallpro/callctl/internal/version"
)

var versionFlagShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo()
		if versionFlagShort {
			cmd.Println(info.Short())
			return
		}
		cmd.Println(info.String())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionFlagShort, "short", false, "print only the version number")
	rootCmd.AddCommand(versionCmd)
}
