package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alarmclock/core/internal/application/services"
	"github.com/alarmclock/core/internal/domain/entities"
	"github.com/alarmclock/core/internal/infrastructure/config"
	"github.com/alarmclock/core/internal/infrastructure/logger"
	"github.com/alarmclock/core/internal/infrastructure/server"
)

// Set at build time with -ldflags "-X ...".
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
	GitCommit = "development"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the alarm clock server",
		Long:  "Start the clock ticker and serve the page, the JSON API, health checks and metrics",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewAlarmsCommand creates the alarms command that prints the seeded list
func NewAlarmsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarms",
		Short: "Print the seeded alarms",
		Long:  "Print the seeded alarms, filtered the same way the search field filters them",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, _ := cmd.Flags().GetString("query")
			return printAlarms(cmd.OutOrStdout(), services.FilterAlarms(entities.SeedAlarms(), query))
		},
	}

	cmd.Flags().StringP("query", "q", "", "Search query matched against label and time")
	return cmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print alarmclock version",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "alarmclock v%s\n", Version)
			fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting alarm clock server",
		"address", cfg.Server.GetAddr(),
		"environment", cfg.App.Environment,
		"tick_interval", cfg.Clock.TickInterval.String(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Fatalw("Server failed to start", "error", err)
		}
		return
	case sig := <-quit:
		appLogger.Infow("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Errorw("Graceful shutdown failed", "error", err)
	}
}

func printAlarms(w io.Writer, alarms []entities.Alarm) error {
	if len(alarms) == 0 {
		_, err := fmt.Fprintln(w, "Будильники не найдены")
		return err
	}

	on := color.New(color.FgGreen).SprintFunc()
	off := color.New(color.FgHiBlack).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, a := range alarms {
		state := off("выкл")
		if a.Enabled {
			state = on("вкл ")
		}

		repeat := "однократно"
		if len(a.Repeat) > 0 {
			repeat = strings.Join(a.Repeat, ", ")
		}

		if _, err := fmt.Fprintf(w, "%s  %s  %-20s %s  [%s]\n", state, bold(a.Time), a.Label, repeat, a.Sound); err != nil {
			return err
		}
	}
	return nil
}
