package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"romclerk/internal/config"
	"romclerk/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify that the configured directories and catalog are usable",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, ctx, jsonOutput, args)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	return cmd
}

func runCheck(cmd *cobra.Command, cctx *commandContext, jsonOutput bool, args []string) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}

	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir, err := config.ExpandPath(args[0])
		if err != nil {
			return fmt.Errorf("resolve target directory: %w", err)
		}
		// Checks run against a copy so the override never leaks into other
		// commands sharing this process.
		override := *cfg
		override.Paths.RomDir = dir
		cfg = &override
	}

	results := preflight.RunAll(cfg)

	if jsonOutput {
		type checkPayload struct {
			Name   string `json:"name"`
			Passed bool   `json:"passed"`
			Detail string `json:"detail,omitempty"`
		}
		payloads := make([]checkPayload, 0, len(results))
		for _, result := range results {
			payloads = append(payloads, checkPayload{
				Name:   result.Name,
				Passed: result.Passed,
				Detail: result.Detail,
			})
		}
		if err := writeJSON(cmd, map[string]any{
			"checks": payloads,
			"passed": preflight.AllPassed(results),
		}); err != nil {
			return err
		}
		if !preflight.AllPassed(results) {
			return errors.New("one or more checks failed")
		}
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Check", "Status", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))

	if !preflight.AllPassed(results) {
		return errors.New("one or more checks failed")
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}
