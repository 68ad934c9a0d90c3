package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"romclerk/internal/confirm"
	"romclerk/internal/journal"
	"romclerk/internal/logging"
	"romclerk/internal/renamer"
	"romclerk/internal/services"
)

func newUndoCommand(ctx *commandContext) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "undo [run-id]",
		Short: "Restore the names recorded for a journaled run",
		Long: "Undo replays a journaled run in reverse, restoring each file's recorded\n" +
			"old name. Without a run id the most recent run is undone. A unique\n" +
			"run id prefix is enough to select a run.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUndo(cmd, ctx, apply, args)
		},
	}

	cmd.Flags().BoolVarP(&apply, "apply", "y", false, "Undo without asking for confirmation")

	return cmd
}

func runUndo(cmd *cobra.Command, cctx *commandContext, apply bool, args []string) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("journal is disabled; there is no run history to undo")
	}

	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runCtx := cmd.Context()
	out := cmd.OutOrStdout()

	var run *journal.Run
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		id := strings.TrimSpace(args[0])
		run, err = store.RunByID(runCtx, id)
		if err != nil {
			if errors.Is(err, journal.ErrAmbiguousRun) {
				return fmt.Errorf("run id %q matches more than one run; use a longer prefix", id)
			}
			return fmt.Errorf("look up run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("no run matches %q", id)
		}
	} else {
		run, err = store.LastRun(runCtx)
		if err != nil {
			return fmt.Errorf("look up last run: %w", err)
		}
		if run == nil {
			return errors.New("journal is empty; nothing to undo")
		}
	}

	if run.Undone {
		return fmt.Errorf("run %s was already undone", shortRunID(run.ID))
	}

	renames, err := store.RenamesForRun(runCtx, run.ID)
	if err != nil {
		return fmt.Errorf("load renames for run: %w", err)
	}
	if len(renames) == 0 {
		fmt.Fprintf(out, "Run %s applied no renames; nothing to undo.\n", shortRunID(run.ID))
		return nil
	}

	fmt.Fprintf(out, "Run %s renamed %d file(s) in %s.\n",
		shortRunID(run.ID), len(renames), run.RootDir)
	fmt.Fprintln(out, renderUndoTable(renames))

	if !apply {
		prompter := confirm.New(cmd.InOrStdin(), out)
		ok, err := prompter.Confirm(fmt.Sprintf("Restore %d original name(s)?", len(renames)))
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Run left as applied.")
			return nil
		}
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	runCtx = services.WithRunID(runCtx, run.ID)

	// Later renames can occupy names earlier ones vacated, so restoring in
	// reverse order keeps every step collision-free.
	reverts := make([]renamer.Revert, 0, len(renames))
	for i := len(renames) - 1; i >= 0; i-- {
		reverts = append(reverts, renamer.Revert{
			FromName: renames[i].NewName,
			ToName:   renames[i].OldName,
		})
	}

	ren := renamer.New(logging.WithContext(runCtx, logger), filepath.Join(cfg.Paths.LogDir, lockFileName))
	outcome, err := ren.Revert(runCtx, run.RootDir, reverts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Restored %d of %d file(s)", len(outcome.Reverted), len(reverts))
	if len(outcome.Failed) > 0 {
		fmt.Fprintf(out, ", %d failed", len(outcome.Failed))
	}
	fmt.Fprintln(out, ".")
	for _, failure := range outcome.Failed {
		fmt.Fprintf(out, "  failed: %s: %v\n", failure.Revert.FromName, failure.Err)
	}

	if len(outcome.Failed) > 0 {
		// Leaving the run active lets a later undo retry the failed files.
		fmt.Fprintln(out, "Run left as applied so the remaining files can be retried.")
		return nil
	}

	if err := store.MarkUndone(runCtx, run.ID); err != nil {
		return fmt.Errorf("mark run undone: %w", err)
	}
	fmt.Fprintf(out, "Run %s marked as undone.\n", shortRunID(run.ID))
	return nil
}

func renderUndoTable(renames []journal.Rename) string {
	rows := make([][]string, 0, len(renames))
	for _, r := range renames {
		rows = append(rows, []string{
			r.NewName,
			r.OldName,
			r.Action,
		})
	}
	return renderTable(
		[]string{"Current name", "Restores to", "Action"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
}
