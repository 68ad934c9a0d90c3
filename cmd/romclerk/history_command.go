package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"romclerk/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show journaled runs, or the renames of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, ctx, limit, jsonOutput, args)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	return cmd
}

type runPayload struct {
	ID         string `json:"id"`
	RootDir    string `json:"root_dir"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	Planned    int    `json:"planned"`
	Applied    int    `json:"applied"`
	Failed     int    `json:"failed"`
	Undone     bool   `json:"undone"`
}

type renamePayload struct {
	Position int    `json:"position"`
	Action   string `json:"action"`
	OldName  string `json:"old_name"`
	NewName  string `json:"new_name"`
	Checksum string `json:"checksum,omitempty"`
	Source   string `json:"source,omitempty"`
}

func runToPayload(run *journal.Run) runPayload {
	payload := runPayload{
		ID:        run.ID,
		RootDir:   run.RootDir,
		StartedAt: run.StartedAt.Format(time.RFC3339),
		Planned:   run.Planned,
		Applied:   run.Applied,
		Failed:    run.Failed,
		Undone:    run.Undone,
	}
	if run.FinishedAt != nil {
		payload.FinishedAt = run.FinishedAt.Format(time.RFC3339)
	}
	return payload
}

func renameToPayload(rename journal.Rename) renamePayload {
	return renamePayload{
		Position: rename.Position,
		Action:   rename.Action,
		OldName:  rename.OldName,
		NewName:  rename.NewName,
		Checksum: rename.Checksum,
		Source:   rename.Source,
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func runHistory(cmd *cobra.Command, cctx *commandContext, limit int, jsonOutput bool, args []string) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Journal.Enabled {
		return errors.New("journal is disabled; there is no run history")
	}

	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runCtx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		id := strings.TrimSpace(args[0])
		run, err := store.RunByID(runCtx, id)
		if err != nil {
			if errors.Is(err, journal.ErrAmbiguousRun) {
				return fmt.Errorf("run id %q matches more than one run; use a longer prefix", id)
			}
			return fmt.Errorf("look up run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("no run matches %q", id)
		}
		renames, err := store.RenamesForRun(runCtx, run.ID)
		if err != nil {
			return fmt.Errorf("load renames for run: %w", err)
		}
		if jsonOutput {
			payloads := make([]renamePayload, 0, len(renames))
			for _, rename := range renames {
				payloads = append(payloads, renameToPayload(rename))
			}
			return writeJSON(cmd, map[string]any{
				"run":     runToPayload(run),
				"renames": payloads,
			})
		}
		fmt.Fprintf(out, "Run %s (%s) renamed %d of %d planned file(s) in %s; undone: %s\n",
			shortRunID(run.ID), run.StartedAt.Local().Format(time.DateTime),
			run.Applied, run.Planned, run.RootDir, yesNo(run.Undone))
		if len(renames) == 0 {
			return nil
		}
		rows := make([][]string, 0, len(renames))
		for _, r := range renames {
			rows = append(rows, []string{
				strconv.Itoa(r.Position + 1),
				r.OldName,
				r.NewName,
				r.Action,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"#", "Old name", "New name", "Action"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
		return nil
	}

	runs, err := store.RecentRuns(runCtx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if jsonOutput {
		payloads := make([]runPayload, 0, len(runs))
		for _, run := range runs {
			payloads = append(payloads, runToPayload(run))
		}
		return writeJSON(cmd, map[string]any{"runs": payloads})
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "Journal is empty.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.RootDir,
			strconv.Itoa(run.Planned),
			strconv.Itoa(run.Applied),
			strconv.Itoa(run.Failed),
			yesNo(run.Undone),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Directory", "Planned", "Applied", "Failed", "Undone"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
	return nil
}
