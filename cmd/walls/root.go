package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mmcdole/walls/internal/config"
	"github.com/mmcdole/walls/internal/desktop"
	"github.com/mmcdole/walls/internal/domain"
	"github.com/mmcdole/walls/internal/download"
	"github.com/mmcdole/walls/internal/log"
	"github.com/mmcdole/walls/internal/service"
	"github.com/mmcdole/walls/internal/store"
	"github.com/mmcdole/walls/internal/tui"
	"github.com/mmcdole/walls/internal/wallhaven"
)

// DefaultRunTimeout bounds a whole run: search, tag lookups, download and install
const DefaultRunTimeout = 2 * time.Minute

type rootOptions struct {
	configPath string
	quiet      bool
	timeout    time.Duration
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "walls",
		Short: "Set a random wallhaven wallpaper that fits your screen",
		Long: `walls picks a random wallpaper from wallhaven.cc at your screen resolution,
skipping any wallpaper with a tag containing one of your excluded terms,
and sets it as the desktop background.

  walls -q nature --exclude anime --exclude girl`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApply(cmd, opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/walls/config.yaml)")

	flags := cmd.Flags()
	flags.StringP("query", "q", "", "search query (overrides search.query)")
	flags.StringArrayP("exclude", "x", nil, "exclude wallpapers with a tag containing this text (repeatable, overrides search.exclude_tags)")
	flags.StringP("resolution", "r", "", "target resolution as WIDTHxHEIGHT, skips display detection")
	flags.Bool("atleast", false, "accept wallpapers at least as large as the resolution")
	flags.Bool("no-persist", false, "set the wallpaper for this session only")
	flags.BoolVar(&opts.quiet, "quiet", false, "print nothing on success")
	flags.DurationVar(&opts.timeout, "timeout", DefaultRunTimeout, "give up after this long")

	cmd.AddCommand(newHistoryCmd(opts, stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// applyFlags overlays command-line flags on the loaded configuration.
// Only flags given explicitly override file values.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("query") {
		cfg.Search.Query, _ = flags.GetString("query")
	}
	if flags.Changed("exclude") {
		cfg.Search.ExcludeTags, _ = flags.GetStringArray("exclude")
	}
	if atLeast, _ := flags.GetBool("atleast"); atLeast {
		cfg.Search.ResolutionMode = string(domain.ResolutionAtLeast)
	}
	if noPersist, _ := flags.GetBool("no-persist"); noPersist {
		cfg.Wallpaper.Persist = false
	}
	if resolution, _ := flags.GetString("resolution"); resolution != "" {
		res, err := domain.ParseResolution(resolution)
		if err != nil {
			return err
		}
		cfg.Display.Width = res.Width
		cfg.Display.Height = res.Height
	}
	return nil
}

// setupLogging builds the run logger. A logging problem never stops a run:
// it is reported on stderr and logs are discarded.
func setupLogging(cfg *config.Config, stderr io.Writer) (*slog.Logger, func()) {
	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: logging disabled: %v\n", err)
		return log.NullLogger(), func() {}
	}
	return logger, func() { closer.Close() }
}

func runApply(cmd *cobra.Command, opts *rootOptions, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog := setupLogging(cfg, stderr)
	defer closeLog()
	logger = logger.With("run_id", uuid.NewString())

	logger.Info("starting walls", "version", Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	res, ok := cfg.FixedResolution()
	if !ok {
		res, err = desktop.DetectResolution(ctx)
		if err != nil {
			logger.Error("failed to detect resolution", "error", err)
			return fmt.Errorf("failed to detect screen resolution: %w", err)
		}
		logger.Info("detected resolution", "resolution", res.String())
	}

	var history domain.HistoryStore
	if cfg.History.Enabled {
		hs, err := store.NewHistoryStore(cfg.History.File)
		if err != nil {
			// A broken history database only disables history
			logger.Warn("history disabled", "error", err, "file", cfg.History.File)
		} else {
			defer hs.Close()
			history = hs
		}
	}

	client := wallhaven.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, logger)
	installer := desktop.NewInstaller(cfg.Wallpaper.Command, cfg.Wallpaper.Args, logger)

	spinner := !opts.quiet && isTerminal(stdout)

	// The byte bar only renders to a plain terminal; the spinner owns the screen otherwise
	var barOut io.Writer
	if !opts.quiet && !spinner && isTerminal(stderr) {
		barOut = stderr
	}

	run := func(ctx context.Context, observer domain.ProgressObserver) (*domain.HistoryEntry, error) {
		selector := service.NewSelectorService(client, observer, logger)
		downloader := download.NewDownloader(cfg.Wallpaper.Dir, nil, barOut, logger)
		svc := service.NewWallpaperService(selector, downloader, installer, history, observer, cfg.Wallpaper.Persist, logger)
		return svc.Apply(ctx, policy, res)
	}

	var entry *domain.HistoryEntry
	switch {
	case spinner:
		entry, err = tui.RunWithSpinner(ctx, stdout, run)
	case opts.quiet:
		entry, err = run(ctx, nil)
	default:
		entry, err = run(ctx, tui.NewLineObserver(stderr))
	}
	if err != nil {
		return err
	}

	if !opts.quiet {
		fmt.Fprint(stdout, tui.RenderApplied(entry))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	return tui.Width(f)
}
