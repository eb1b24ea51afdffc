package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/alarmclock/core/cmd/api/commands"
)

// @title Будильник API
// @version 1.0
// @description Alarm clock view state: live clock, alarm list, search, notifications and the creation dialog.

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:   "alarmclock",
		Short: "Alarm clock server",
		Long:  `alarmclock serves the Будильник screen: a live clock, the alarm list with search and switches, the notification history and the new alarm dialog.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewAlarmsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
