package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"daidelog/internal/adapter/fs"
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List every entry of a directory",
	Long: `List every entry name of a directory, unfiltered and non-recursive.
Without an argument the games directory is listed.

Examples:
  daidelog ls
  daidelog ls results`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := GetConfig().GamesDir(GetRootDir())
	if len(args) > 0 {
		dir = args[0]
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(GetRootDir(), dir)
		}
	}

	names, err := fs.NewLoader().ListEntries(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
