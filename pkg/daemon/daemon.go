// Package daemon implements the pnfcli process lifecycle: logging, the
// saved configuration, the optional HTTP API and the shell itself.
package daemon

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"github.com/psaab/pnfcli/pkg/api"
	"github.com/psaab/pnfcli/pkg/cli"
	"github.com/psaab/pnfcli/pkg/cmdtree"
	"github.com/psaab/pnfcli/pkg/commands"
	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/logging"
	"github.com/psaab/pnfcli/pkg/session"
)

// Options configures the daemon.
type Options struct {
	ConfigFile  string // startup-config JSON snapshot
	HistoryFile string
	LogFile     string
	LogLevel    string
	APIAddr     string          // empty disables the HTTP API
	APIAuth     *api.AuthConfig // nil = no authentication
	ArchiveDir  string          // empty disables snapshot archives
	Archives    int             // archive files kept
	Plain       bool            // read input without line editing

	Stdin  io.Reader // default os.Stdin
	Stdout io.Writer // default os.Stdout
}

// Daemon runs one shell session.
type Daemon struct {
	opts Options
}

// New creates a new Daemon.
func New(opts Options) *Daemon {
	if opts.ConfigFile == "" {
		opts.ConfigFile = configstore.DefaultPath
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Daemon{opts: opts}
}

// Run blocks until the shell ends or SIGTERM arrives.
func (d *Daemon) Run(ctx context.Context) error {
	logger, console, closer, err := logging.Setup(logging.Options{
		File:     logging.FileConfig{Path: d.opts.LogFile},
		Level:    d.opts.LogLevel,
		Terminal: d.opts.Stdout,
	})
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	id := uuid.NewString()
	logger = logger.With("session", id)
	logger.Info("starting pnfcli", "config", d.opts.ConfigFile, "pid", os.Getpid())

	// Load persisted configuration
	store := configstore.New(d.opts.ConfigFile)
	if d.opts.ArchiveDir != "" {
		store.SetArchiveDir(d.opts.ArchiveDir, d.opts.Archives)
	}
	cfg, err := store.Load()
	if err != nil {
		logger.Warn("failed to load config, starting with defaults", "err", err)
	} else {
		logger.Info("configuration loaded", "file", store.Path())
	}

	sess := session.New(d.opts.Stdout, nil)
	sess.ID = id
	sess.Config = cfg
	sess.Store = store
	sess.Log = logger
	sess.Console = console

	reg := cmdtree.NewRegistry()
	if err := commands.Register(reg); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}

	// SIGINT belongs to the shell; only SIGTERM ends the process.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	// WaitGroup for coordinated shutdown of background goroutines
	var wg sync.WaitGroup

	metrics := cli.NewMetrics()
	if d.opts.APIAddr != "" {
		srv := api.NewServer(api.Config{
			Addr:    d.opts.APIAddr,
			Auth:    d.opts.APIAuth,
			Metrics: metrics.Registry(),
			Store:   store,
			Logs:    console.Buffer(),
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Error("HTTP API server failed", "err", err)
			}
		}()
	}

	shell := cli.New(reg, sess, cli.Options{
		HistoryFile: d.opts.HistoryFile,
		Stdin:       d.opts.Stdin,
		Stdout:      d.opts.Stdout,
		Metrics:     metrics,
		Plain:       d.opts.Plain,
	})

	// Run the shell in a goroutine so we can still handle signals
	errCh := make(chan error, 1)
	go func() {
		errCh <- shell.Run()
	}()

	var runErr error
	select {
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("CLI: %w", err)
		}
	case <-ctx.Done():
		logger.Info("signal received, shutting down")
	}

	// Cancel context to stop background goroutines, then wait for them.
	stop()
	wg.Wait()

	logger.Info("shutdown complete", "commands", len(sess.History))
	return runErr
}
