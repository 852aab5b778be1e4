package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/artisanmap/internal/catalog"
	"github.com/jask/artisanmap/internal/client"
	"github.com/jask/artisanmap/internal/config"
	"github.com/jask/artisanmap/internal/locale"
	"github.com/jask/artisanmap/internal/logging"
	"github.com/jask/artisanmap/internal/mapview"
	"github.com/jask/artisanmap/internal/tui"
)

type options struct {
	configPath string
	apiURL     string
	locale     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "artisanmap",
		Short:        "Browse local artisans and places from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, logger, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p := tea.NewProgram(tui.New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run ui: %w", err)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&opts.apiURL, "api-url", "", "API base URL, overrides api.url")
	pf.StringVar(&opts.locale, "locale", "", "UI language: es or en")

	root.AddCommand(
		snapshotCmd(opts, "list", "Print the directory as a list and exit", tui.TabList),
		snapshotCmd(opts, "map", "Print the map and exit", tui.TabMap),
		configCmd(opts),
	)
	return root
}

func snapshotCmd(opts *options, use, short string, tab tui.Tab) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps, logger, err := setup(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tui.Snapshot(ctx, deps, tab, width, height))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "output width in columns")
	defHeight := 0
	if tab == tui.TabMap {
		defHeight = 20
	}
	cmd.Flags().IntVar(&height, "height", defHeight, "output height in rows (0 = unbounded list)")
	return cmd
}

func configCmd(opts *options) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if opts.apiURL != "" {
				cfg.API.URL = opts.apiURL
			}
			if opts.locale != "" {
				cfg.UI.Locale = opts.locale
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cfgCmd.AddCommand(initCmd)
	return cfgCmd
}

// setup loads configuration and builds everything the screens depend on.
func setup(ctx context.Context, opts *options) (tui.Deps, *zap.Logger, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return tui.Deps{}, nil, err
	}
	if opts.apiURL != "" {
		cfg.API.URL = opts.apiURL
	}
	if opts.locale != "" {
		cfg.UI.Locale = opts.locale
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return tui.Deps{}, nil, err
	}

	fallback, err := catalog.LoadBundle(ctx)
	if err != nil {
		_ = logger.Sync()
		return tui.Deps{}, nil, fmt.Errorf("bundled catalog: %w", err)
	}

	api := client.New(cfg.BaseURL(), fallback,
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(logger),
	)
	capability := mapview.NewResolver().Resolve(cfg.Map.Provider)

	logger.Info("starting",
		zap.String("api", api.BaseURL()),
		zap.String("map_provider", cfg.Map.Provider),
		zap.Bool("map_available", capability.Available()),
		zap.String("locale", cfg.UI.Locale),
	)

	return tui.Deps{
		Source:     api,
		Capability: capability,
		Region: mapview.Region{
			Lat:      cfg.Map.CenterLat,
			Lng:      cfg.Map.CenterLng,
			LatDelta: cfg.Map.LatDelta,
			LngDelta: cfg.Map.LngDelta,
		},
		Translator:    locale.New(cfg.UI.Locale),
		Logger:        logger,
		UnmountOnBlur: cfg.UI.UnmountOnBlur,
	}, logger, nil
}
