package cmd

import (
	"github.com/favigo/favigo/color"
	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/icon"
	"github.com/favigo/favigo/log"
	"github.com/favigo/favigo/sniff"
	"github.com/favigo/favigo/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sniffCmd)

	sniffCmd.Flags().BoolP("dry-run", "n", false, "Only print the detected type, do not rename")
}

// sniffCmd corrects file extensions according to the image signature.
var sniffCmd = &cobra.Command{
	Use:   "sniff <file>...",
	Short: "Detect the real image type of files and fix their extensions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun := lo.Must(cmd.Flags().GetBool("dry-run"))

		for _, path := range args {
			if dryRun {
				header, err := filesystem.ReadHeader(path, sniff.HeaderSize)
				handleErr(err)

				cmd.Printf("%s %s\n", path, style.Fg(color.Yellow)(sniff.Detect(header).OrElse("unknown")))
				continue
			}

			renamed, err := sniff.Apply(path, log.Global())
			handleErr(err)

			if renamed == path {
				cmd.Printf("%s %s\n", style.Faint(icon.Get(icon.Image)), style.Faint(path+" unchanged"))
				continue
			}

			cmd.Printf(
				"%s %s -> %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				path,
				style.Bold(renamed),
			)
		}
	},
}
