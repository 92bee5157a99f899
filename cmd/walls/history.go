package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmcdole/walls/internal/config"
	"github.com/mmcdole/walls/internal/service"
	"github.com/mmcdole/walls/internal/store"
	"github.com/mmcdole/walls/internal/tui"
)

func newHistoryCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		q      service.HistoryQuery
		format string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List wallpapers set by walls, newest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(root.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger, closeLog := setupLogging(cfg, stderr)
			defer closeLog()

			hs, err := store.NewHistoryStore(cfg.History.File)
			if err != nil {
				return fmt.Errorf("failed to open history: %w", err)
			}
			defer hs.Close()

			entries, err := service.NewHistoryService(hs, logger).Recent(q)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(stdout, tui.RenderHistory(entries, terminalWidth(stdout)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&q.Limit, "limit", "n", 20, "show at most this many entries (0 for all)")
	cmd.Flags().StringVarP(&q.Filter, "filter", "f", "", "fuzzy filter over id, query and tags, best match first")
	cmd.Flags().StringVarP(&q.Tag, "tag", "t", "", "only entries with a tag fuzzily matching this text")
	cmd.Flags().StringVar(&format, "format", "", "output format (json)")

	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "walls %s\n", Version)
		},
	}
}
