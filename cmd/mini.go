package cmd

import (
	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/mini"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
	miniCmd.Flags().BoolP("continue", "c", false, "Start from the list of recently played media")
}

// miniCmd launches the prompt based front-end.
var miniCmd = &cobra.Command{
	Use:   "mini [file or url]",
	Short: "Launch the lightweight prompt based player",
	Long:  `Control playback through a sequence of prompts instead of the full screen interface.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()
		config.Watch()

		source, err := sourceArg(args)
		handleErr(err)

		options := mini.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Source:   source,
		}
		handleErr(mini.Run(newSession(), &options))
	},
}
