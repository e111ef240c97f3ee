package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/favicon"
	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/key"
	"github.com/favigo/favigo/negotiator"
	"github.com/favigo/favigo/network"
	"github.com/favigo/favigo/overrides"
	"github.com/favigo/favigo/style"
	"github.com/favigo/favigo/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolP("meta", "m", false, "Also list icons referenced by <meta> tags")
	extractCmd.Flags().StringP("base", "b", "", "Resolve relative references against this base (defaults to the page URL)")
	extractCmd.Flags().IntP("limit", "n", 0, "List at most this many references")
	extractCmd.Flags().BoolP("json", "j", false, "Print references as a JSON array")
}

// extractCmd lists the icon references declared by a web page or a local HTML file.
var extractCmd = &cobra.Command{
	Use:   "extract <url|file>",
	Short: "List icon references declared by a web page or a local HTML file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			meta   = lo.Must(cmd.Flags().GetBool("meta"))
			base   = lo.Must(cmd.Flags().GetString("base"))
			limit  = lo.Must(cmd.Flags().GetInt("limit"))
			asJson = lo.Must(cmd.Flags().GetBool("json"))
		)

		ov := overrides.FromConfig()
		if meta {
			ov = ov.Merge(overrides.Patch{SearchMetaTags: mo.Some(true)})
		}

		document, page, err := readDocument(cmd.Context(), args[0], ov)
		handleErr(err)

		baseOpt := page
		if base != "" {
			baseOpt = mo.Some(base)
		}

		hrefs, err := scanner()(document, baseOpt, ov)
		handleErr(err)

		if limit > 0 {
			hrefs = hrefs[:util.Min(limit, len(hrefs))]
		}

		if asJson {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(hrefs))
			return
		}

		if !util.IsTerminal(os.Stdout) {
			for _, href := range hrefs {
				cmd.Println(href)
			}
			return
		}

		if len(hrefs) == 0 {
			cmd.Printf("%s %s\n", style.Fg(color.Yellow)(icon.Get(icon.Warn)), "no icon references found")
			return
		}

		truncate := style.Truncate(util.Max(util.TerminalWidth(80)-4, 20))
		cmd.Println(style.Faint(fmt.Sprintf("found %s", util.Quantify(len(hrefs), "reference", "references"))))
		for _, href := range hrefs {
			cmd.Printf("%s %s\n", style.Fg(color.Cyan)(icon.Get(icon.Link)), truncate(href))
		}
	},
}

// readDocument loads source from the filesystem when such a file exists and
// fetches it otherwise. The page URL is only known for fetched pages.
func readDocument(ctx context.Context, source string, ov overrides.Overrides) (string, mo.Option[string], error) {
	if exists, _ := filesystem.API().Exists(source); exists {
		data, err := filesystem.API().ReadFile(source)
		if err != nil {
			return "", mo.None[string](), err
		}
		return string(data), mo.None[string](), nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	u, err := favicon.ParseTarget(util.WithScheme(source))
	if err != nil {
		return "", mo.None[string](), err
	}

	n := negotiator.New(network.New(), viper.GetString(key.NetworkUserAgent))
	resp, err := n.Fetch(ctx, u.String(), negotiator.HTMLMimeTypesFromConfig(), ov)
	if err != nil {
		return "", mo.None[string](), err
	}
	defer resp.Body.Close()

	limit := viper.GetInt64(key.FetchMaxHTMLBytes)
	if limit <= 0 {
		limit = favicon.DefaultMaxHTMLBytes
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", mo.None[string](), fmt.Errorf("read %s: %w", u, err)
	}

	return string(data), mo.Some(u.String()), nil
}
