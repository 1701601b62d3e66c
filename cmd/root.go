// Package cmd implements the command-line interface for reelplay.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/reelplay/reelplay/color"
	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/engine/mpv"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/key"
	"github.com/reelplay/reelplay/log"
	"github.com/reelplay/reelplay/picker"
	"github.com/reelplay/reelplay/reflector"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/transport"
	"github.com/reelplay/reelplay/tui"
	"github.com/reelplay/reelplay/util"
	"github.com/reelplay/reelplay/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().IntP("volume", "V", 50, "Initial volume in percent, applied to the first loaded media")
	lo.Must0(viper.BindPFlag(key.PlayerVolume, rootCmd.PersistentFlags().Lookup("volume")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember the last position of played media")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().BoolP("continue", "c", false, "Start from the list of recently played media")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

var rootCmd = &cobra.Command{
	Use:   constant.App + " [file or url]",
	Short: "A terminal front-end for mpv with synchronized transport controls",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal front-end for mpv with synchronized transport controls"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()
		config.Watch()

		source, err := sourceArg(args)
		handleErr(err)

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
			Source:   source,
		}
		handleErr(tui.Run(newSession(), &options))
	},
}

// sourceArg turns the optional positional argument into a media source.
func sourceArg(args []string) (mo.Option[transport.Source], error) {
	if len(args) == 0 {
		return mo.None[transport.Source](), nil
	}

	source := picker.Accept(args[0])
	if source.IsAbsent() {
		return source, errNoSource
	}

	return source, nil
}

// newSession wires the mpv engine, the transport controller and the reflector together.
func newSession() *reflector.Session {
	volume := util.Clamp(viper.GetFloat64(key.PlayerVolume)/100, 0, 1)
	controller := transport.New(mpv.Factory(mpv.OptionsFromConfig()), volume)

	log.Infof("session started with volume %.2f", volume)
	return reflector.NewSession(controller)
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

var errNoSource = errors.New("empty source, expected a file path or url")
