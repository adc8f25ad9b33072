package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"daidelog/config"
	"daidelog/internal/adapter/daide"
	"daidelog/internal/adapter/fs"
	"daidelog/internal/adapter/results"
	"daidelog/internal/adapter/store"
	"daidelog/internal/logger"
	"daidelog/internal/usecase"
)

var (
	convertForce      bool
	convertKeep       bool
	convertWorkers    int
	convertNoProgress bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert game logs into JSON game records",
	Long: `Convert every DAIDE server log in the games directory into a JSON game
record in the results directory. Conversions are recorded in
.daidelog/catalog.db so unchanged logs can be skipped when results are kept.

Examples:
  daidelog convert                 # Clean results and convert everything
  daidelog convert --keep -w 8     # Only convert new or modified logs`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVarP(&convertForce, "force", "f", false, "clean results and reconvert every log")
	convertCmd.Flags().BoolVar(&convertKeep, "keep", false, "keep existing results and skip unchanged logs")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel conversions (default from config)")
	convertCmd.Flags().BoolVar(&convertNoProgress, "no-progress", false, "disable the progress bar")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	root := GetRootDir()
	log := logger.Named("convert")

	if err := config.EnsureStateDir(root); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", config.StateDirName, err)
	}

	dbPath := config.CatalogDBPath(root)
	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer st.Close()

	opts := usecase.ConvertOptions{
		Clean:   (cfg.Results.Clean && !convertKeep) || convertForce,
		Rebuild: convertForce,
	}

	migration, err := st.CheckMigration(cfg)
	if err != nil {
		return fmt.Errorf("failed to check migration: %w", err)
	}
	if migration.NeedsRebuild {
		log.Info("catalog rebuild required", "reason", migration.Reason)
		if err := st.Clear(); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		opts.Rebuild = true
	} else if migration.NeedsMigration {
		log.Info("running schema migration", "reason", migration.Reason)
		if err := st.Migrate(cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	workers := cfg.Convert.Workers
	if convertWorkers > 0 {
		workers = convertWorkers
	}

	uc := usecase.NewConvertUseCase(
		fs.NewWalker(cfg.Games.Includes, cfg.Games.Excludes, cfg.Games.Recursive),
		fs.NewReader(),
		daide.NewParser(cfg.Convert.FilterKeywords, cfg.Convert.Powers),
		results.NewWriter(cfg.ResultsDir(root), cfg.Results.Indent),
		st,
		workers,
		log,
	)

	var progress usecase.ProgressFunc
	if !convertNoProgress {
		progress = newProgress(cmd.ErrOrStderr(), "Converting")
	}

	gamesDir := cfg.GamesDir(root)
	fmt.Fprintf(cmd.OutOrStdout(), "Reading games from %s...\n", gamesDir)

	result, err := uc.Convert(cmd.Context(), gamesDir, opts, progress)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	// Record the configuration the catalog now reflects.
	if err := st.Migrate(cfg); err != nil {
		return fmt.Errorf("failed to update schema info: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nConversion complete:\n")
	fmt.Fprintf(out, "  Games converted: %d\n", result.FilesConverted)
	fmt.Fprintf(out, "  Games skipped:   %d (unchanged)\n", result.FilesSkipped)
	fmt.Fprintf(out, "  Games removed:   %d (log deleted)\n", result.FilesDeleted)
	if result.ResultsCleaned > 0 {
		fmt.Fprintf(out, "  Results cleaned: %d\n", result.ResultsCleaned)
	}
	fmt.Fprintf(out, "  Phases written:  %d\n", result.Phases)
	fmt.Fprintf(out, "\nResults stored in: %s\n", cfg.ResultsDir(root))
	return nil
}
