package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/reelplay/reelplay/color"
	"github.com/reelplay/reelplay/history"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func completionHistoryLocators(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	entries, err := history.Recent()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return lo.Map(entries, func(e *history.Entry, _ int) string {
		return e.Locator
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("search", "q", "", "Only show entries fuzzy matching the query")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most n entries")
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")

	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played media and where playback stopped",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			query  = lo.Must(cmd.Flags().GetString("search"))
			limit  = lo.Must(cmd.Flags().GetInt("limit"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		entries, err := history.Search(query)
		handleErr(err)

		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("No history yet"))
			return
		}

		for _, entry := range entries {
			cmd.Printf(
				"%s %s\n  %s\n",
				style.Fg(color.Purple)(entry.String()),
				style.Fg(color.Yellow)(fmt.Sprintf("%d%%", entry.Progress())),
				style.Faint(entry.Locator),
			)
		}

		cmd.Println()
		cmd.Println(style.Faint(util.Quantify(len(entries), "entry", "entries")))
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:               "remove [locator]",
	Short:             "Forget a played file or url",
	Aliases:           []string{"rm"},
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionHistoryLocators,
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		entry, ok := saved[args[0]]
		if !ok {
			handleErr(fmt.Errorf("%s is not in the history", args[0]))
		}

		handleErr(history.Remove(entry))
		fmt.Printf(
			"%s removed %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(entry.Name),
		)
	},
}

func init() {
	historyCmd.AddCommand(historySchemaCmd)
}

// historySchemaCmd prints the JSON schema of history --json output.
var historySchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the history output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		schema := reflector.Reflect([]*history.Entry{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
