package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mantis/internal/app"
	"mantis/internal/server"

	logger "github.com/Bparsons0904/goLogger"
)

const shutdownGrace = 5 * time.Second

func gracefulShutdown(
	app *app.App,
	appServer *server.AppServer,
	done chan bool,
	log logger.Logger,
) {
	log = log.Function("gracefulShutdown")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")

	// In-flight requests get the grace period before the listener is torn down
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := appServer.FiberApp.ShutdownWithContext(ctx); err != nil {
		log.Er("server forced to shutdown", err)
	}

	// Stops the scheduler and closes database connections
	if err := app.Close(); err != nil {
		log.Er("failed to close app", err)
	}

	log.Info("Server exiting")
	done <- true
}

func main() {
	log := logger.New("main")

	app, err := app.New()
	if err != nil {
		os.Exit(1)
	}

	appServer, err := server.New(app)
	if err != nil {
		os.Exit(1)
	}

	done := make(chan bool, 1)

	go func() {
		if err := appServer.Listen(app.Config.ServerPort); err != nil {
			os.Exit(1)
		}
	}()

	go gracefulShutdown(app, appServer, done, log)

	<-done
	log.Info("Graceful shutdown complete.")
}
