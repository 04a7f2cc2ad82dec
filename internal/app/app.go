package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/five82/spaggo/internal/config"
	"github.com/five82/spaggo/internal/display"
	"github.com/five82/spaggo/internal/logging"
	"github.com/five82/spaggo/internal/pager"
	"github.com/five82/spaggo/internal/portal"
	"github.com/five82/spaggo/internal/service"
	"github.com/five82/spaggo/internal/session"
)

// Options configure the spaggo application.
type Options struct {
	ConfigPath  string // empty uses ~/.config/spaggo/config.toml
	Verbose     bool
	Interactive bool
	Stdout      io.Writer        // nil uses os.Stdout
	Now         func() time.Time // nil uses time.Now
}

// App wires configuration, session, portal client and rendering together.
// Each command method runs one user-facing operation.
type App struct {
	cfg         config.Config
	logger      *zap.Logger
	tokens      *session.FileStore
	svc         *service.Service
	theme       display.Theme
	renderer    *display.Renderer
	out         io.Writer
	interactive bool
	now         func() time.Time
}

// New loads the config and builds the application graph.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Verbose: opts.Verbose})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	tokens, err := session.NewFileStore(cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("init token store: %w", err)
	}
	state := session.NewState(tokens.Load())

	client, err := portal.NewClient(portal.Options{
		BaseURL: cfg.BaseURL,
		Headers: headersOf(cfg.Headers),
		Timeout: cfg.HTTPTimeout,
		Logger:  logger.Named("portal"),
	})
	if err != nil {
		return nil, fmt.Errorf("init portal client: %w", err)
	}

	svc, err := service.New(service.Options{
		Fetcher:     client,
		Store:       tokens,
		State:       state,
		Credentials: cfg.Credentials,
		MaxRelogins: cfg.MaxRelogins,
		Logger:      logger.Named("service"),
	})
	if err != nil {
		return nil, fmt.Errorf("init service: %w", err)
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	theme := display.GetTheme(cfg.Theme)

	_, cached := state.Current()
	logger.Debug("spaggo ready",
		zap.String("base_url", cfg.BaseURL),
		zap.String("token_path", tokens.Path()),
		zap.Bool("token_cached", cached),
	)

	return &App{
		cfg:         cfg,
		logger:      logger,
		tokens:      tokens,
		svc:         svc,
		theme:       theme,
		renderer:    display.NewRenderer(cfg.WrapWidth, theme),
		out:         out,
		interactive: opts.Interactive,
		now:         now,
	}, nil
}

// Close flushes the logger.
func (a *App) Close() error {
	// Syncing stderr fails on some terminals; nothing is lost.
	_ = a.logger.Sync()
	return nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) requireCredentials() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("missing credentials: %w", err)
	}
	return nil
}

// emit prints content, or opens it in the pager in interactive mode.
func (a *App) emit(ctx context.Context, title, content string) error {
	if a.interactive {
		return pager.Run(ctx, title, content, a.theme)
	}
	_, err := fmt.Fprintln(a.out, content)
	return err
}

func headersOf(headers []config.Header) http.Header {
	h := make(http.Header, len(headers))
	for _, header := range headers {
		h.Add(header.Key, header.Value)
	}
	return h
}
