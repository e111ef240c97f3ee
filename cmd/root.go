// Package cmd implements the command-line interface for favigo.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/config"
	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/extract"
	"github.com/favigo/favigo/favicon"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/log"
	"github.com/favigo/favigo/negotiator"
	"github.com/favigo/favigo/network"
	"github.com/favigo/favigo/open"
	"github.com/favigo/favigo/overrides"
	"github.com/favigo/favigo/query"
	"github.com/favigo/favigo/style"
	"github.com/favigo/favigo/util"
	"github.com/favigo/favigo/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("html-tokenizer", false, "Find icon references with an HTML tokenizer instead of pattern matching")
	lo.Must0(viper.BindPFlag(key.FetchHTMLTokenizer, rootCmd.PersistentFlags().Lookup("html-tokenizer")))

	rootCmd.Flags().StringP("output", "o", "", "Output path template. Placeholders: %basename%, %filestem%, %extname%")
	lo.Must0(viper.BindPFlag(key.FetchTemplate, rootCmd.Flags().Lookup("output")))

	rootCmd.Flags().Bool("ext-from-content-type", false, "Append the extension inferred from the Content-Type header")
	lo.Must0(viper.BindPFlag(key.FetchExtFromContentType, rootCmd.Flags().Lookup("ext-from-content-type")))

	rootCmd.Flags().Bool("ext-from-magic-number", false, "Fix the extension according to the file signature")
	lo.Must0(viper.BindPFlag(key.FetchExtFromMagicNumber, rootCmd.Flags().Lookup("ext-from-magic-number")))

	rootCmd.Flags().Bool("ignore-content-type", false, "Accept responses regardless of their Content-Type header")
	lo.Must0(viper.BindPFlag(key.FetchIgnoreContentType, rootCmd.Flags().Lookup("ignore-content-type")))

	rootCmd.Flags().BoolP("search-meta-tags", "m", false, "Also look for icons referenced by <meta> tags")
	lo.Must0(viper.BindPFlag(key.FetchSearchMetaTags, rootCmd.Flags().Lookup("search-meta-tags")))

	rootCmd.Flags().BoolP("json", "j", false, "Print a JSON report of every strategy tried")
	rootCmd.Flags().Bool("open", false, "Open the saved icon afterwards")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(os.Stderr)
	})
}

// rootCmd fetches the favicon of a single website.
var rootCmd = &cobra.Command{
	Use:   constant.Favigo + " [url]",
	Short: "Fetch the favicon of any website",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiCyan).Render("    - Fetch the favicon of any website"),
	Example: `  favigo github.com
  favigo https://go.dev/blog -o "icons/%basename%" --ext-from-magic-number
  favigo example.org --json`,
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		handleErr(config.Validate())

		var (
			target = util.WithScheme(args[0])
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var erase = func() {}
		if !asJson && util.IsTerminal(os.Stderr) {
			erase = util.PrintErasable(os.Stderr, fmt.Sprintf("%s Fetching favicon of %s...", icon.Get(icon.Progress), target))
		}

		report, err := newResolver().ResolveReport(ctx, target, viper.GetString(key.FetchTemplate))
		erase()

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(report))
		}

		handleErr(err)

		if err := query.Remember(report.Target, 1); err != nil {
			log.Warnf("remember %s: %v", report.Target, err)
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			if err := open.Start(report.Path, viper.GetString(key.CliOpenWith)); err != nil {
				log.Warnf("open %s: %v", report.Path, err)
			}
		}

		if asJson {
			return
		}

		if util.IsTerminal(os.Stdout) {
			cmd.Printf(
				"%s %s %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Bold(report.Path),
				strategyTag(report.Strategy),
			)
			return
		}

		cmd.Println(report.Path)
	},
}

// newResolver builds a resolver from the loaded configuration.
func newResolver() *favicon.Resolver {
	return favicon.New(
		favicon.WithNegotiator(negotiator.New(network.New(), viper.GetString(key.NetworkUserAgent))),
		favicon.WithOverrides(overrides.FromConfig()),
		favicon.WithMimeTypes(negotiator.IconMimeTypesFromConfig(), negotiator.HTMLMimeTypesFromConfig()),
		favicon.WithMaxHTMLBytes(viper.GetInt64(key.FetchMaxHTMLBytes)),
		favicon.WithScanner(scanner()),
		favicon.WithLogger(log.Global()),
	)
}

func scanner() extract.Scanner {
	if viper.GetBool(key.FetchHTMLTokenizer) {
		return extract.Tokenized
	}
	return extract.Favicons
}

func strategyTag(strategy string) string {
	c := color.Provider
	switch {
	case strategy == favicon.StrategyDirect:
		c = color.Direct
	case strategy == favicon.StrategyOrigin:
		c = color.Origin
	case strings.HasPrefix(strategy, favicon.StrategyHTML):
		c = color.Scraped
	}
	return style.Tag(c)(strategy)
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	rootCmd.SetOut(os.Stdout)

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
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
