package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"romclerk/internal/config"
	"romclerk/internal/dat"
	"romclerk/internal/logging"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var datDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load the catalog and report what each source contributed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, ctx, datDir, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&datDir, "dat-dir", "", "Directory containing DAT documents (overrides the config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")

	return cmd
}

func runCatalog(cmd *cobra.Command, cctx *commandContext, datDirFlag string, jsonOutput bool) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}

	datDir := strings.TrimSpace(datDirFlag)
	if datDir == "" {
		datDir = cfg.Paths.DatDir
	} else {
		datDir, err = config.ExpandPath(datDir)
		if err != nil {
			return fmt.Errorf("resolve DAT directory: %w", err)
		}
	}
	if datDir == "" {
		return fmt.Errorf("no DAT directory: pass --dat-dir or set paths.dat_dir in the config")
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	documents, err := dat.ListDocuments(datDir)
	if err != nil {
		return fmt.Errorf("list DAT documents: %w", err)
	}

	catalog, stats, err := dat.Load(dat.Sources{
		OverridesPath: cfg.Paths.OverridesPath,
		Documents:     documents,
	}, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if jsonOutput {
		type sourcePayload struct {
			Source     string `json:"source"`
			Records    int    `json:"records"`
			Added      int    `json:"added"`
			Duplicates int    `json:"duplicates"`
			Invalid    int    `json:"invalid"`
		}
		payloads := make([]sourcePayload, 0, len(stats))
		for _, s := range stats {
			payloads = append(payloads, sourcePayload{
				Source:     s.Source,
				Records:    s.Records,
				Added:      s.Added,
				Duplicates: s.Duplicates,
				Invalid:    s.Invalid,
			})
		}
		return writeJSON(cmd, map[string]any{
			"entries": catalog.Len(),
			"sources": payloads,
		})
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintf(out, "No catalog sources found in %s.\n", datDir)
		return nil
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Source,
			strconv.Itoa(s.Records),
			strconv.Itoa(s.Added),
			strconv.Itoa(s.Duplicates),
			strconv.Itoa(s.Invalid),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Records", "Added", "Duplicates", "Invalid"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Fprintf(out, "Catalog holds %d unique checksum entries.\n", catalog.Len())
	return nil
}
