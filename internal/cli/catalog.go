package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"daidelog/config"
	"daidelog/internal/adapter/store"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List converted games",
	Long: `List the games recorded in the conversion catalog.

Examples:
  daidelog catalog
  daidelog catalog --json`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	root := GetRootDir()

	dbPath := config.CatalogDBPath(root)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no catalog found. Run 'daidelog convert' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer st.Close()

	recs, err := st.ListGames()
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	out := cmd.OutOrStdout()
	if catalogJSON {
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, "No games converted.")
		return nil
	}

	fmt.Fprintf(out, "%-30s %6s %6s %8s  %s\n", "GAME", "PHASES", "MOVES", "MESSAGES", "STATUS")
	for _, r := range recs {
		name := r.Source
		if rel, err := filepath.Rel(root, r.Source); err == nil {
			name = rel
		}
		fmt.Fprintf(out, "%-30s %6d %6d %8d  %s\n", name, r.Phases, r.Moves, r.Messages, r.Status)
	}
	return nil
}
