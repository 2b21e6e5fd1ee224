package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tuannh982/vector-map/world"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	configPath string
	worlds     int
	ticks      uint64
	logLevel   string
	reportPath string
	rows       int
}

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:          "vector-map",
		Short:        "Entity worlds backed by a dense vector map",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(fs))
	return root
}

func newRunCmd(fs afero.Fs) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one or more entity worlds until interrupted or the tick limit is reached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, fs, cmd.OutOrStdout(), opts, cmd.Flags().Changed("ticks"))
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "JSONC config file")
	cmd.Flags().IntVarP(&opts.worlds, "worlds", "n", 1, "number of independent worlds")
	cmd.Flags().Uint64Var(&opts.ticks, "ticks", 0, "stop after this many ticks, 0 runs until interrupted")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "write the final report to this file instead of stdout")
	cmd.Flags().IntVar(&opts.rows, "rows", 10, "entities listed per world in the final report")
	return cmd
}

func run(ctx context.Context, fs afero.Fs, stdout io.Writer, opts *runOptions, ticksSet bool) error {
	if opts.worlds < 1 {
		return errors.Errorf("--worlds must be at least 1, got %d", opts.worlds)
	}
	cfg, err := world.LoadConfig(fs, opts.configPath)
	if err != nil {
		return err
	}
	if ticksSet {
		cfg.MaxTicks = opts.ticks
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := configureLogging(cfg.LogLevel); err != nil {
		return err
	}

	worlds := make([]*world.World, 0, opts.worlds)
	for i := 0; i < opts.worlds; i++ {
		worldCfg := *cfg
		worldCfg.Seed = cfg.Seed + int64(i)
		w, err := world.NewWorld(fmt.Sprintf("world-%d", i), &worldCfg)
		if err != nil {
			return err
		}
		worlds = append(worlds, w)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range worlds {
		g.Go(func() error {
			if err := w.Start(gctx); err != nil {
				return errors.Wrapf(err, "start %s", w.Name())
			}
			w.Serve()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := stdout
	if opts.reportPath != "" {
		f, err := fs.Create(opts.reportPath)
		if err != nil {
			return errors.Wrap(err, "create report")
		}
		defer f.Close()
		out = f
	}
	for _, w := range worlds {
		w.WriteReport(out, opts.rows)
	}
	return nil
}

func configureLogging(level string) error {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if level == "" {
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log.SetLevel(lvl)
	return nil
}
