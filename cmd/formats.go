package cmd

import (
	"os"
	"strings"

	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.SetOut(os.Stdout)
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the file extensions offered by the pickers",
	Long: `List the file extensions offered by the file and folder pickers.
These are hints only, anything mpv can open may be passed as an argument.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, ext := range constant.MediaExtensions {
			cmd.Println(style.Bold(strings.TrimPrefix(ext, ".")))
		}
	},
}
