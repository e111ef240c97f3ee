package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/constant"
	"github.com/favigo/favigo/style"
	"github.com/favigo/favigo/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint": style.Faint,
	"bold":  style.Bold,
	"cyan":  style.Fg(color.HiCyan),
	"green": style.Fg(color.Green),
}).Parse(`{{ cyan "▇▇▇" }} {{ cyan .App }}

  {{ faint "Version" }}         {{ bold .Version }}
  {{ faint "Git Commit" }}      {{ bold .Revision }}
  {{ faint "Build Date" }}      {{ bold .BuiltAt }}
  {{ faint "Built By" }}        {{ bold .BuiltBy }}
  {{ faint "Platform" }}        {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Source" }}          {{ green .Repo }}
`))

// versionCmd displays application version and build metadata.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify(os.Stderr)

		info := struct {
			App, Version, OS, Arch, BuiltAt, BuiltBy, Revision, Repo string
		}{
			App:      constant.Favigo,
			Version:  constant.Version,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
			Repo:     "https://github.com/" + constant.Repository,
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
