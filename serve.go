package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/logging"
	"github.com/harrisonrobin/taskflow/pkg/server"
)

var (
	serveListen    string
	serveAutoLogin time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board as JSON over HTTP",
	Long: `Serve the board over HTTP. Board routes answer 401 until a client
posts to /api/login, or until --auto-login elapses.`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config)")
	serveCmd.Flags().DurationVar(&serveAutoLogin, "auto-login", 0, "Sign in automatically after this delay, e.g. 1.5s")
}

func serve(cmd *cobra.Command, args []string) error {
	tasks, err := loadTasks()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	addr := cfg.Listen
	if serveListen != "" {
		addr = serveListen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gate := auth.NewGate()
	if serveAutoLogin > 0 {
		go auth.Simulate(ctx, gate, serveAutoLogin)
	}
	go func() {
		if ok, err := gate.Wait(ctx); err == nil {
			logging.Logger.WithField("authenticated", ok).Info("login gate signalled")
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(tasks, gate, loc).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.WithField("addr", addr).Info("HTTP server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

