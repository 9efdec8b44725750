package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/roach88/wapgraph/internal/codec"
	"github.com/roach88/wapgraph/internal/config"
	"github.com/roach88/wapgraph/internal/metrics"
	"github.com/roach88/wapgraph/internal/service"
	"github.com/roach88/wapgraph/internal/store"
)

// env is what a command needs to reach the store.
type env struct {
	opts     *RootOptions
	cfg      config.Config
	out      *OutputFormatter
	codec    *codec.QuadCodec
	store    *store.Store
	svc      *service.Service
	registry *prometheus.Registry
	logger   *slog.Logger

	// rootCreated is set when opening the environment created the root
	// container.
	rootCreated bool
}

// Service options applied by every command; tests swap in deterministic
// clocks and identity generators.
var serviceOptions []service.Option

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadConfig reads --config when given and applies --db on top.
func loadConfig(opts *RootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.Config, verbose bool) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openEnv loads the configuration, opens the database and builds the
// service. Failures are reported through the formatter.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	e := &env{opts: opts, out: newFormatter(opts, cmd), codec: codec.New()}

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, e.out.Fail(fmt.Errorf("load config: %w", err))
	}
	e.cfg = cfg
	e.logger = newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)

	e.registry = prometheus.NewRegistry()
	m := metrics.New(e.registry)

	e.logger.Debug("opening database", "path", cfg.Database, "backend", cfg.Backend)
	st, err := store.Open(cfg.Database, store.WithMetrics(m))
	if err != nil {
		return nil, e.out.Fail(fmt.Errorf("open database: %w", err))
	}
	e.store = st

	svcOpts := append([]service.Option{service.WithMetrics(m), service.WithLogger(e.logger)}, serviceOptions...)
	svc, err := service.New(st, e.codec, cfg, svcOpts...)
	if err != nil {
		st.Close()
		return nil, e.out.Fail(err)
	}
	e.svc = svc

	// Every command works below the root container.
	e.rootCreated, err = svc.InitRootContainer(e.ctx(cmd))
	if err != nil {
		st.Close()
		return nil, e.out.Fail(err)
	}
	return e, nil
}

func (e *env) close() {
	if e.opts.Metrics {
		if err := e.dumpMetrics(e.out.GetErrWriter()); err != nil {
			e.logger.Warn("metrics dump failed", "error", err)
		}
	}
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close database", "error", err)
	}
}

func (e *env) dumpMetrics(w io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func (e *env) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readPayload reads a file, or stdin for "-".
func readPayload(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read payload: %w", err)
	}
	return string(b), nil
}

// inputFormat picks the payload syntax: the flag, then the file
// extension, then the configured default.
func (e *env) inputFormat(flag, path string) string {
	if flag != "" {
		return flag
	}
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		if info, ok := codec.LookupFormat(path[i:]); ok {
			return string(info.Name)
		}
	}
	return e.cfg.Format
}

func (e *env) outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return e.cfg.Format
}
