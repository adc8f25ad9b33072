package cli

import (
	"github.com/spf13/cobra"

	"daidelog/internal/adapter/fs"
	"daidelog/internal/logger"
	"daidelog/internal/usecase"
)

var headsCmd = &cobra.Command{
	Use:   "heads",
	Short: "Print the first line of every game log",
	Long: `Print the first line of every entry in the games directory, exactly as
it appears in the file. Later lines are not read.

Examples:
  daidelog heads
  daidelog heads -d /srv/tournament`,
	Args: cobra.NoArgs,
	RunE: runHeads,
}

func init() {
	rootCmd.AddCommand(headsCmd)
}

func runHeads(cmd *cobra.Command, args []string) error {
	dir := GetConfig().GamesDir(GetRootDir())

	uc := usecase.NewHeadsUseCase(fs.NewLoader(), fs.NewReader(), cmd.OutOrStdout(), logger.Named("heads"))
	n, err := uc.Run(dir)
	if err != nil {
		return err
	}

	logger.Named("heads").Info("first lines printed", "dir", dir, "files", n)
	return nil
}
