package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"romclerk/internal/checksum"
	"romclerk/internal/config"
	"romclerk/internal/confirm"
	"romclerk/internal/dat"
	"romclerk/internal/journal"
	"romclerk/internal/logging"
	"romclerk/internal/matcher"
	"romclerk/internal/planner"
	"romclerk/internal/renamer"
	"romclerk/internal/report"
	"romclerk/internal/rom"
	"romclerk/internal/services"
)

type renameOptions struct {
	apply       bool
	showBytes   bool
	stripPrefix bool
	exts        []string
	datDir      string
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var opts renameOptions

	cmd := &cobra.Command{
		Use:   "rename [dir]",
		Short: "Match files against the catalog and rename them",
		Long: "Rename scans a directory, matches each file's checksum against the\n" +
			"DAT catalog, and renames matches to their canonical titles. The plan\n" +
			"is shown and confirmed before anything changes on disk.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(cmd, ctx, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.apply, "apply", "y", false, "Apply the plan without asking for confirmation")
	cmd.Flags().BoolVar(&opts.showBytes, "show-bytes", false, "Log the leading bytes of every scanned file")
	cmd.Flags().BoolVar(&opts.stripPrefix, "strip-prefix", false, "Strip numeric prefixes from unmatched files")
	cmd.Flags().StringSliceVar(&opts.exts, "ext", nil, "File extensions to scan (overrides the config)")
	cmd.Flags().StringVar(&opts.datDir, "dat-dir", "", "Directory containing DAT documents (overrides the config)")

	return cmd
}

func runRename(cmd *cobra.Command, cctx *commandContext, opts renameOptions, args []string) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	runCtx := cmd.Context()
	out := cmd.OutOrStdout()

	rootDir := cfg.Paths.RomDir
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		rootDir, err = config.ExpandPath(args[0])
		if err != nil {
			return fmt.Errorf("resolve target directory: %w", err)
		}
	}
	if rootDir == "" {
		return errors.New("no target directory: pass one or set paths.rom_dir in the config")
	}

	datDir := strings.TrimSpace(opts.datDir)
	if datDir == "" {
		datDir = cfg.Paths.DatDir
	} else {
		datDir, err = config.ExpandPath(datDir)
		if err != nil {
			return fmt.Errorf("resolve DAT directory: %w", err)
		}
	}
	if datDir == "" {
		return errors.New("no DAT directory: pass --dat-dir or set paths.dat_dir in the config")
	}

	exts := cfg.Scan.Extensions
	if len(opts.exts) > 0 {
		exts = config.NormalizeExtensions(opts.exts)
	}
	if len(exts) == 0 {
		return errors.New("no file extensions to scan: set scan.extensions or pass --ext")
	}

	stripPrefix := cfg.Rename.StripPrefix || opts.stripPrefix

	if err := checksum.SelfTest(); err != nil {
		logger.Warn("checksum self-test failed, matches may be unreliable", logging.Error(err))
	}

	documents, err := dat.ListDocuments(datDir)
	if err != nil {
		return fmt.Errorf("list DAT documents: %w", err)
	}
	if len(documents) == 0 && cfg.Paths.OverridesPath == "" {
		logger.Warn("no catalog sources found; only prefix stripping can rename anything",
			logging.String("dat_dir", datDir))
	}

	catalog, stats, err := dat.Load(dat.Sources{
		OverridesPath: cfg.Paths.OverridesPath,
		Documents:     documents,
	}, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog ready",
		logging.Int("entries", catalog.Len()),
		logging.Int("sources", len(stats)))

	files, err := rom.Scan(rootDir, exts)
	if err != nil {
		return fmt.Errorf("scan %s: %w", rootDir, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No candidate files found in %s.\n", rootDir)
		return nil
	}

	// The bar owns stdout while it runs, so per-file detail drops to debug
	// level when the bar is active.
	barActive := showProgressBar(cfg, opts.showBytes)
	detailLevel := slog.LevelInfo
	var bar *pb.ProgressBar
	if barActive {
		detailLevel = slog.LevelDebug
		bar = pb.New(len(files)).SetWriter(out).SetMaxWidth(100)
		bar.Start()
	}

	plan := planner.New(planner.Options{StripPrefix: stripPrefix})
	summary := report.Summary{Scanned: len(files)}
	maxBytes := cfg.MaxSizeBytes()

	for _, file := range files {
		if err := runCtx.Err(); err != nil {
			return err
		}
		if maxBytes > 0 && file.Size > maxBytes {
			logger.Warn("skipping oversized file",
				logging.String("file", file.Name),
				logging.Int64("size", file.Size),
				logging.Int64("limit", maxBytes))
			if bar != nil {
				bar.Increment()
			}
			continue
		}
		data, err := os.ReadFile(file.Path)
		if err != nil {
			logger.Warn("skipping unreadable file",
				logging.String("file", file.Name),
				logging.Error(err))
			if bar != nil {
				bar.Increment()
			}
			continue
		}
		if opts.showBytes {
			logger.Info("file bytes",
				logging.String("file", file.Name),
				logging.String("leading", rom.HexPreview(data, 16)),
				logging.Int64("size", file.Size))
		}

		res := matcher.Match(data, catalog)
		if res.Matched() {
			summary.Matched++
			logger.Log(runCtx, detailLevel, "matched",
				logging.String("file", file.Name),
				logging.String("checksum", res.Checksum),
				logging.String("mode", res.Mode.String()),
				logging.String("title", res.Entry.Title),
				logging.String(logging.FieldSource, res.Entry.Source))
		} else {
			logger.Log(runCtx, detailLevel, "no match",
				logging.String("file", file.Name),
				logging.String("checksum", res.Checksum))
		}
		plan.Add(file, res)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	items := plan.Items()
	unmatched := plan.Unmatched()
	summary.Unmatched = len(unmatched)
	summary.Planned = len(items)

	writer := report.NewWriter(cfg.Paths.ReportDir)
	planPath, err := writer.WritePlan(items)
	if err != nil {
		logger.Warn("could not write plan report", logging.Error(err))
		planPath = ""
	}
	if _, err := writer.WriteUnmatched(unmatched); err != nil {
		logger.Warn("could not write unmatched report", logging.Error(err))
	}

	fmt.Fprintf(out, "Scanned %d file(s): %d matched, %d unmatched.\n",
		summary.Scanned, summary.Matched, summary.Unmatched)

	if len(items) == 0 {
		fmt.Fprintln(out, "Nothing to rename.")
		return nil
	}

	fmt.Fprintln(out, renderPlanTable(items))
	if planPath != "" {
		fmt.Fprintf(out, "Plan written to %s\n", planPath)
	}

	if !opts.apply {
		prompter := confirm.New(cmd.InOrStdin(), out)
		ok, err := prompter.Confirm(fmt.Sprintf("Apply %d rename(s)?", len(items)))
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Plan left unapplied.")
			return nil
		}
	}

	var store *journal.Store
	var run *journal.Run
	if cfg.Journal.Enabled {
		store, err = journal.Open(cfg)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer store.Close()
		run, err = store.BeginRun(runCtx, rootDir, len(items))
		if err != nil {
			return fmt.Errorf("record run start: %w", err)
		}
		runCtx = services.WithRunID(runCtx, run.ID)
	}

	ren := renamer.New(logging.WithContext(runCtx, logger), filepath.Join(cfg.Paths.LogDir, lockFileName))
	outcome, applyErr := ren.Apply(runCtx, rootDir, items)
	summary.Applied = len(outcome.Applied)
	summary.Failed = len(outcome.Failed)

	if store != nil && run != nil {
		// Journal everything that touched the disk even when the run was
		// interrupted; undo can only restore what was recorded.
		recordCtx := context.WithoutCancel(runCtx)
		for i, applied := range outcome.Applied {
			record := journal.Rename{
				RunID:    run.ID,
				Position: i,
				Action:   string(applied.Item.Action),
				OldName:  applied.Item.OldName,
				NewName:  applied.FinalName,
				Checksum: applied.Item.Checksum,
				Source:   applied.Item.Source,
			}
			if err := store.RecordRename(recordCtx, record); err != nil {
				logger.Warn("could not journal rename",
					logging.String("file", applied.Item.OldName),
					logging.Error(err))
			}
		}
		if err := store.FinishRun(recordCtx, run.ID, summary.Applied, summary.Failed); err != nil {
			logger.Warn("could not journal run outcome",
				logging.String(logging.FieldRunID, run.ID),
				logging.Error(err))
		}
	}
	if applyErr != nil {
		return applyErr
	}

	fmt.Fprintf(out, "Renamed %d of %d file(s)", summary.Applied, summary.Planned)
	if summary.Failed > 0 {
		fmt.Fprintf(out, ", %d failed", summary.Failed)
	}
	fmt.Fprintln(out, ".")
	for _, failure := range outcome.Failed {
		fmt.Fprintf(out, "  failed: %s: %v\n", failure.Item.OldName, failure.Err)
	}
	if run != nil {
		fmt.Fprintf(out, "Journaled as run %s. Undo with: romclerk undo %s\n",
			run.ID, shortRunID(run.ID))
	}

	logger.Info("run complete",
		logging.Int("scanned", summary.Scanned),
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("planned", summary.Planned),
		logging.Int("applied", summary.Applied),
		logging.Int("failed", summary.Failed))
	return nil
}

// lockFileName lives under the log directory so concurrent invocations
// against different ROM directories still serialize.
const lockFileName = "romclerk.lock"

func showProgressBar(cfg *config.Config, showBytes bool) bool {
	if showBytes {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Format), "json") {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Logging.Level), "debug") {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func renderPlanTable(items []planner.Item) string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.OldName,
			item.NewName,
			string(item.Action),
		})
	}
	return renderTable(
		[]string{"#", "Old name", "New name", "Action"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}
