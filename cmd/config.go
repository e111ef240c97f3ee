package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/config"
	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/style"
	"github.com/favigo/favigo/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configCheckCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().StringSliceP("key", "k", nil, "Only describe these keys")
	configInfoCmd.Flags().BoolP("json", "j", false, "Print fields as JSON")

	configGetCmd.Flags().StringP("key", "k", "", "Key to read")

	configSetCmd.Flags().StringP("key", "k", "", "Key to update")
	configSetCmd.Flags().StringSliceP("value", "v", nil, "New value. Repeat for list keys")

	configResetCmd.Flags().StringP("key", "k", "", "Key to restore")
	configResetCmd.Flags().BoolP("all", "a", false, "Restore every key")
	configResetCmd.MarkFlagsMutuallyExclusive("key", "all")

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	for _, c := range []*cobra.Command{configInfoCmd, configGetCmd, configSetCmd, configResetCmd} {
		_ = c.RegisterFlagCompletionFunc("key", completionConfigKeys)
	}
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change favigo settings",
}

var configInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe settings with their current and default values",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			keys   = lo.Must(cmd.Flags().GetStringSlice("key"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		if len(keys) == 0 {
			keys = lo.Keys(config.Default)
		}
		for _, k := range keys {
			handleErr(knownKey(k))
		}
		sort.Strings(keys)

		fields := lo.Map(keys, func(k string, _ int) config.Field { return config.Default[k] })

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
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

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a setting",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)
		cmd.Println(viper.Get(k))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change a setting and save it to the config file",
	Args:              cobra.ArbitraryArgs,
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		k := keyArg(cmd, args)

		raw := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			raw = args[1:]
		}

		value, err := config.Parse(k, raw)
		handleErr(err)

		viper.Set(k, value)
		saveConfig()

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(k),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report settings holding values favigo cannot use",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(config.Validate())
		cmd.Printf("%s configuration is valid\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore settings to their defaults",
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("all") {
			handleErr(errors.New("either --key or --all must be set"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		keys := lo.Keys(config.Default)
		if !lo.Must(cmd.Flags().GetBool("all")) {
			k := lo.Must(cmd.Flags().GetString("key"))
			handleErr(knownKey(k))
			keys = []string{k}
		}

		for _, k := range keys {
			viper.Set(k, config.Default[k].Value)
		}
		saveConfig()

		if len(keys) == 1 {
			cmd.Printf(
				"%s reset %s to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Purple)(keys[0]),
				style.Fg(color.Yellow)(fmt.Sprint(config.Default[keys[0]].Value)),
			)
			return
		}

		cmd.Printf("%s reset all settings\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if lo.Must(filesystem.API().Exists(path)) {
				handleErr(filesystem.API().Remove(path))
			}
		}

		handleErr(viper.SafeWriteConfig())
		cmd.Printf("%s wrote config to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Delete the config file",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		cmd.Printf("%s deleted config\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

// keyArg takes the key from the first argument, falling back to --key.
func keyArg(cmd *cobra.Command, args []string) string {
	k := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		k = args[0]
	}
	if k == "" {
		handleErr(errors.New("key is required as an argument or --key flag"))
	}
	handleErr(knownKey(k))
	return k
}

// knownKey suggests the closest registered key for a misspelled one.
func knownKey(k string) error {
	if _, ok := config.Default[k]; ok {
		return nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})

	return fmt.Errorf("unknown key %s, did you mean %s?", style.Fg(color.Red)(k), style.Fg(color.Yellow)(closest))
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Favigo+".toml")
}

// saveConfig writes the in-memory settings, creating the file on first use.
func saveConfig() {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = viper.SafeWriteConfig()
	}
	handleErr(err)
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	keys := lo.Keys(config.Default)
	sort.Strings(keys)
	return keys, cobra.ShellCompDirectiveNoFileComp
}
