package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	xhttp "VaderBoot/pkg/http"
	applogger "VaderBoot/pkg/logger"
)

type namedCloser struct {
	name string
	c    io.Closer
}

// App encapsulates the entire application lifecycle.
type App struct {
	l          *applogger.Logger
	httpServer *xhttp.Server
	closers    []namedCloser
}

// New creates a new App instance with all dependencies.
func New(l *applogger.Logger, httpServer *xhttp.Server) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{l: l, httpServer: httpServer}
}

// AddCloser registers an infrastructure client to close on shutdown, in registration order.
func (a *App) AddCloser(name string, c io.Closer) {
	a.closers = append(a.closers, namedCloser{name: name, c: c})
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops the server, then closes infrastructure clients.
func (a *App) shutdown() error {
	a.l.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	for _, nc := range a.closers {
		if err := nc.c.Close(); err != nil {
			a.l.Warn("close error", applogger.String("client", nc.name), applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
