package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/skykit/internal/client/client"
	"github.com/dmitrijs2005/skykit/internal/client/config"
	"github.com/dmitrijs2005/skykit/internal/client/migrations"
	"github.com/dmitrijs2005/skykit/internal/client/repositories/session"
	"github.com/dmitrijs2005/skykit/internal/common"
	"github.com/dmitrijs2005/skykit/internal/dbx"
	"github.com/dmitrijs2005/skykit/internal/filex"
	"github.com/dmitrijs2005/skykit/internal/logging"
	"github.com/dmitrijs2005/skykit/internal/ratelimit"
	"github.com/dmitrijs2005/skykit/internal/xrpc"
)

// Build wires the transport, limiter, session store and facade described
// by cfg. The returned close function releases the session database.
func Build(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	log := logging.New(cfg.LogLevel, os.Stderr)

	transport, err := xrpc.NewClient(xrpc.Config{
		Service:    cfg.Service,
		Proxies:    map[string]string{common.ChatNamespacePrefix: cfg.ChatProxy},
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
		Logger:     log,
		UserAgent:  "skykit",
	})
	if err != nil {
		return nil, nil, err
	}

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RateLimitInterval)
	if err != nil {
		return nil, nil, err
	}

	opts := []client.Option{
		client.WithLimiter(limiter),
		client.WithLogger(log),
		client.WithLanguages(cfg.Langs...),
		client.WithLanguageDetection(cfg.DetectLanguage),
	}

	closeFn := func() {}
	var store *session.SQLiteRepository
	if cfg.SessionDB != "" {
		path, err := filex.EnsureParentDir(cfg.SessionDB)
		if err != nil {
			return nil, nil, err
		}
		db, err := dbx.OpenSQLite(ctx, path, migrations.Migrations)
		if err != nil {
			return nil, nil, fmt.Errorf("session db: %w", err)
		}
		closeFn = func() { _ = db.Close() }
		store = session.NewSQLiteRepository(db, transport.Service(), nil)
		opts = append(opts, client.WithSessionStore(store))
	}

	fc, err := client.New(transport, opts...)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	var loader SessionLoader
	if store != nil {
		loader = store
	}
	return NewApp(cfg, fc, loader, log), closeFn, nil
}

// NotifyContext returns a context cancelled on SIGINT, SIGTERM or SIGQUIT.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
}
