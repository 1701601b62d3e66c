package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/reelplay/reelplay/color"
	"github.com/reelplay/reelplay/config"
	"github.com/reelplay/reelplay/constant"
	"github.com/reelplay/reelplay/filesystem"
	"github.com/reelplay/reelplay/icon"
	"github.com/reelplay/reelplay/style"
	"github.com/reelplay/reelplay/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	errMissingKey   = errors.New("missing setting: pass it as the first argument or with --key")
	errMissingValue = errors.New("missing value: pass it after the setting or with --value")
)

// configPath is the settings file the config subcommands read and write.
func configPath() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

func errUnknownKey(key string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})

	return fmt.Errorf(
		"no setting named %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

// lookupField resolves key to its registered field.
func lookupField(key string) (config.Field, error) {
	field, ok := config.Default[key]
	if !ok {
		return config.Field{}, errUnknownKey(key)
	}
	return field, nil
}

// selectFields returns the fields named by keys, or all of them, ordered by key.
func selectFields(keys []string) ([]config.Field, error) {
	fields := lo.Values(config.Default)

	if len(keys) > 0 {
		fields = make([]config.Field, 0, len(keys))
		for _, key := range keys {
			field, err := lookupField(key)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
	}

	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key < fields[j].Key
	})
	return fields, nil
}

// keyFrom takes the setting from the first argument, falling back to --key.
func keyFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if key, _ := cmd.Flags().GetString("key"); key != "" {
		return key, nil
	}
	return "", errMissingKey
}

// valueFrom takes the words after the setting, falling back to --value.
func valueFrom(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 1 {
		return args[1:], nil
	}
	if value, _ := cmd.Flags().GetStringSlice("value"); len(value) > 0 {
		return value, nil
	}
	return nil, errMissingValue
}

// parseValue converts command line words into the type of the field default.
func parseValue(field config.Field, value []string) (any, error) {
	if len(value) == 0 {
		return nil, errMissingValue
	}

	switch field.Value.(type) {
	case int:
		parsed, err := strconv.Atoi(value[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects a whole number, got %q", field.Key, value[0])
		}
		return parsed, nil
	case bool:
		parsed, err := strconv.ParseBool(value[0])
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", field.Key, value[0])
		}
		return parsed, nil
	case []string:
		return value, nil
	default:
		return value[0], nil
	}
}

// restoreDefaults puts the named settings, or every setting when none are named, back to their defaults.
func restoreDefaults(keys ...string) ([]config.Field, error) {
	fields, err := selectFields(keys)
	if err != nil {
		return nil, err
	}

	for _, field := range fields {
		viper.Set(field.Key, field.Value)
	}
	return fields, nil
}

// persist saves the live settings, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func success(format string, a ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, a...))
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage player, history and interface settings",
	Long:  "Settings are read from " + constant.App + ".toml, REELPLAY_* environment variables and flags, in increasing priority.",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().StringSliceP("key", "k", []string{}, "Only describe these settings")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print the descriptions as JSON")
	_ = configInfoCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)

	configInfoCmd.SetOut(os.Stdout)
}

var configInfoCmd = &cobra.Command{
	Use:     "info",
	Short:   "Describe each setting with its default and current value",
	Aliases: []string{"list"},
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := selectFields(lo.Must(cmd.Flags().GetStringSlice("key")))
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		for i, field := range fields {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(field.Pretty())
		}
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configSetCmd.Flags().StringP("key", "k", "", "Setting to change")
	configSetCmd.Flags().StringSliceP("value", "v", []string{}, "New value; lists take several")
	_ = configSetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change a setting and save it",
	Example:           constant.App + " config set player.seek_step 10\n" + constant.App + " config set player.extra_args --fs --mute=yes",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := keyFrom(cmd, args)
		handleErr(err)
		field, err := lookupField(key)
		handleErr(err)
		words, err := valueFrom(cmd, args)
		handleErr(err)

		value, err := parseValue(field, words)
		handleErr(err)

		viper.Set(key, value)
		handleErr(persist())

		success("%s is now %s", style.Fg(color.Purple)(key), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configGetCmd.Flags().StringP("key", "k", "", "Setting to print")
	_ = configGetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the value a setting currently has",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, err := keyFrom(cmd, args)
		handleErr(err)
		_, err = lookupField(key)
		handleErr(err)

		fmt.Println(viper.Get(key))
	},
}

func init() {
	configCmd.AddCommand(configWriteCmd)
	configWriteCmd.Flags().BoolP("force", "f", false, "Replace an existing settings file")
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the settings in effect to " + constant.App + ".toml",
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if exists, err := filesystem.API().Exists(path); err == nil && exists {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		success("saved settings to %s", path)
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the settings file so only defaults and overrides apply",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		path := configPath()
		handleErr(filesystem.API().Remove(path))
		success("removed %s", path)
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().StringP("key", "k", "", "Setting to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every setting")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")
	configResetCmd.MarkFlagsOneRequired("key", "all")
	_ = configResetCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore one setting, or all of them, to the default",
	Run: func(cmd *cobra.Command, args []string) {
		var keys []string
		if !lo.Must(cmd.Flags().GetBool("all")) {
			keys = append(keys, lo.Must(cmd.Flags().GetString("key")))
		}

		fields, err := restoreDefaults(keys...)
		handleErr(err)
		handleErr(persist())

		if len(keys) == 0 {
			success("restored all %d settings", len(fields))
			return
		}
		success("%s is back to %s", style.Fg(color.Purple)(keys[0]), style.Fg(color.Yellow)(fmt.Sprint(fields[0].Value)))
	},
}
