// @title			ccsfeed API
// @version		1.0
// @description	CCS contest event feed server for scoreboard and resolver tooling.
// @BasePath	/

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/ccsfeed/internal/config"
	"github.com/mtlprog/ccsfeed/internal/database"
	"github.com/mtlprog/ccsfeed/internal/feed"
	"github.com/mtlprog/ccsfeed/internal/handler"
	"github.com/mtlprog/ccsfeed/internal/logger"
	"github.com/mtlprog/ccsfeed/internal/repository"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ccsfeed",
		Usage: "CCS contest event feed server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the feed server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "feed-username",
						Value:   config.DefaultFeedUsername,
						Usage:   "Basic auth username for the CCS API",
						EnvVars: []string{"CCS_USERNAME"},
					},
					&cli.StringFlag{
						Name:    "feed-password",
						Value:   config.DefaultFeedPassword,
						Usage:   "Basic auth password for the CCS API",
						EnvVars: []string{"CCS_PASSWORD"},
					},
				},
				Action: runServe,
			},
			{
				Name:      "init-contest",
				Usage:     "Materialize the event history for a contest",
				ArgsUsage: "<contest-id>",
				Action:    runInitContest,
			},
			{
				Name:      "reset-contest",
				Usage:     "Delete a contest's event history and marker",
				ArgsUsage: "<contest-id>",
				Action:    runResetContest,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func openDatabase(c *cli.Context) (*database.DB, error) {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runServe(c *cli.Context) error {
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db.Pool(), handler.Config{
		FeedUsername: c.String("feed-username"),
		FeedPassword: c.String("feed-password"),
	})

	// Judging record mutations arrive over LISTEN/NOTIFY and feed the
	// projector for as long as the server runs.
	listener := feed.NewRecordListener(db.Pool(), repository.NewRecordRepository(db.Pool()), h.FeedService())
	listenerErr := make(chan error, 1)
	go func() {
		if err := listener.Listen(ctx); err != nil {
			listenerErr <- err
		}
	}()

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// No WriteTimeout: event feed sessions are long-lived streams.
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case err := <-listenerErr:
		return fmt.Errorf("record listener error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runInitContest(c *cli.Context) error {
	contestID := c.Args().First()
	if contestID == "" {
		return fmt.Errorf("contest id argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db.Pool(), handler.Config{})
	if err := h.FeedService().Initialize(c.Context, contestID); err != nil {
		return fmt.Errorf("initialize contest: %w", err)
	}

	slog.Info("contest feed initialized", "contest_id", contestID)
	return nil
}

func runResetContest(c *cli.Context) error {
	contestID := c.Args().First()
	if contestID == "" {
		return fmt.Errorf("contest id argument is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db.Pool(), handler.Config{})
	if err := h.FeedService().Reset(c.Context, contestID); err != nil {
		return fmt.Errorf("reset contest: %w", err)
	}

	slog.Info("contest feed reset", "contest_id", contestID)
	return nil
}
