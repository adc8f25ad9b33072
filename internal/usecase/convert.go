package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"daidelog/internal/domain"
	"daidelog/internal/port"
)

// ConvertUseCase turns server logs into game records.
type ConvertUseCase struct {
	walker  port.FileWalker
	reader  port.FileReader
	parser  port.GameParser
	writer  port.GameWriter
	catalog port.GameCatalog
	workers int
	log     *slog.Logger
}

// NewConvertUseCase creates a new convert use case running up to workers
// conversions at once.
func NewConvertUseCase(
	walker port.FileWalker,
	reader port.FileReader,
	parser port.GameParser,
	writer port.GameWriter,
	catalog port.GameCatalog,
	workers int,
	log *slog.Logger,
) *ConvertUseCase {
	if workers < 1 {
		workers = 1
	}
	return &ConvertUseCase{
		walker:  walker,
		reader:  reader,
		parser:  parser,
		writer:  writer,
		catalog: catalog,
		workers: workers,
		log:     log,
	}
}

// ConvertOptions controls a conversion run.
type ConvertOptions struct {
	// Clean removes existing result files and catalog records first.
	Clean bool
	// Rebuild converts every log even if its catalog record is current.
	Rebuild bool
}

// ConvertResult contains the results of a conversion run.
type ConvertResult struct {
	FilesConverted int
	FilesSkipped   int
	FilesDeleted   int
	ResultsCleaned int
	Phases         int
}

// ProgressFunc is called after each log is handled.
type ProgressFunc func(processed, total int, current string)

// Convert converts every log under root. The first failure cancels the
// remaining work and is returned.
func (u *ConvertUseCase) Convert(ctx context.Context, root string, opts ConvertOptions, progress ProgressFunc) (*ConvertResult, error) {
	result := &ConvertResult{}

	if err := u.writer.Ensure(); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	if opts.Clean {
		removed, err := u.writer.Clean()
		if err != nil {
			return nil, err
		}
		result.ResultsCleaned = removed
		if err := u.catalog.Clear(); err != nil {
			return nil, fmt.Errorf("failed to clear catalog: %w", err)
		}
		u.log.Info("results cleaned", "files", removed)
	}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk games directory: %w", err)
	}
	u.log.Info("converting games", "dir", root, "files", len(files), "workers", u.workers)

	if err := u.checkOutputs(files); err != nil {
		return nil, err
	}

	if err := u.dropVanished(files, result); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		processed int
	)
	done := func(file port.FileInfo, rec *domain.GameRecord) {
		mu.Lock()
		defer mu.Unlock()
		processed++
		if rec != nil {
			result.FilesConverted++
			result.Phases += rec.Phases
		} else {
			result.FilesSkipped++
		}
		if progress != nil {
			progress(processed, len(files), file.Rel)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, file := range files {
		if gctx.Err() != nil {
			break
		}
		file := file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if !opts.Rebuild {
				current, err := u.upToDate(file)
				if err != nil {
					return err
				}
				if current {
					u.log.Debug("game unchanged", "file", file.Rel)
					done(file, nil)
					return nil
				}
			}

			rec, err := u.convertFile(file)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", file.Rel, err)
			}
			done(file, rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	u.log.Info("conversion complete",
		"converted", result.FilesConverted,
		"skipped", result.FilesSkipped,
		"deleted", result.FilesDeleted)
	return result, nil
}

// upToDate reports whether the catalog holds a conversion of file at least as
// new as the file and the result still exists.
func (u *ConvertUseCase) upToDate(file port.FileInfo) (bool, error) {
	rec, ok, err := u.catalog.GetGame(file.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read catalog: %w", err)
	}
	if !ok {
		return false, nil
	}
	return !rec.ModTime.Before(file.ModTime) && u.writer.Exists(rec.Output), nil
}

func (u *ConvertUseCase) convertFile(file port.FileInfo) (*domain.GameRecord, error) {
	lines, err := u.reader.ReadLines(file.Path)
	if err != nil {
		return nil, err
	}

	game, err := u.parser.Parse(lines)
	if err != nil {
		return nil, err
	}

	out, err := u.writer.Write(file.Rel, game)
	if err != nil {
		return nil, err
	}
	u.log.Debug("game written", "file", file.Rel, "output", out, "phases", game.Phases.Len())

	rec := domain.RecordFor(file.Path, out, file.ModTime, game)
	if err := u.catalog.PutGame(rec); err != nil {
		return nil, fmt.Errorf("failed to record conversion: %w", err)
	}
	return &rec, nil
}

// checkOutputs fails when two logs map to the same result file, as g1.log and
// g1.txt do.
func (u *ConvertUseCase) checkOutputs(files []port.FileInfo) error {
	owner := make(map[string]string, len(files))
	for _, f := range files {
		out := u.writer.OutputPath(f.Rel)
		if prev, ok := owner[out]; ok {
			return fmt.Errorf("%w: %s and %s both map to %s", domain.ErrOutputConflict, prev, f.Rel, out)
		}
		owner[out] = f.Rel
	}
	return nil
}

// dropVanished removes catalog records and results of logs that no longer exist.
func (u *ConvertUseCase) dropVanished(files []port.FileInfo, result *ConvertResult) error {
	recs, err := u.catalog.ListGames()
	if err != nil {
		return fmt.Errorf("failed to list catalog: %w", err)
	}

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.Path] = true
	}

	for _, rec := range recs {
		if seen[rec.Source] {
			continue
		}
		if err := u.writer.Remove(rec.Output); err != nil {
			return fmt.Errorf("failed to remove %s: %w", rec.Output, err)
		}
		if err := u.catalog.DeleteGame(rec.Source); err != nil {
			return fmt.Errorf("failed to delete catalog record %s: %w", rec.Source, err)
		}
		u.log.Debug("game removed", "source", rec.Source)
		result.FilesDeleted++
	}
	return nil
}
