package main

import (
	"agri-assistant/cmd/config"
	migration "agri-assistant/cmd/database/migrate"
	"agri-assistant/internal/utils"
	"agri-assistant/internal/utils/logger"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	rootCmd = &cobra.Command{
		Use:   "agri-assistant",
		Short: "Farming assistant backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.LoadConfig()
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func serve(ctx context.Context) error {
	appLog := logger.NewStdout(utils.GetConfig("LOG_LEVEL"), utils.GetConfig("LOG_FORMAT"))

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	app, err := config.NewApp(db, appLog)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", utils.GetConfig("APP_PORT"))
		appLog.Info("server listening", logger.Fields{"addr": addr})
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
