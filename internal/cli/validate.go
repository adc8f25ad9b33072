package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"daidelog/internal/adapter/fs"
	"daidelog/internal/logger"
	"daidelog/internal/usecase"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every result file is valid JSON",
	Long: `Parse every entry of the results directory as JSON and stop at the first
file that fails. With --strict each file must also be a game record.

Examples:
  daidelog validate
  daidelog validate --strict`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "require every file to decode as a game record")
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir := GetConfig().ResultsDir(GetRootDir())

	uc := usecase.NewValidateUseCase(fs.NewLoader(), fs.NewReader(), logger.Named("validate"))
	result, err := uc.Run(dir, validateStrict)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d files valid in %s\n", result.Files, dir)

	kinds := make([]string, 0, len(result.Kinds))
	for k := range result.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(out, "  %-8s %d\n", k+":", result.Kinds[k])
	}
	return nil
}
