package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/collabtodo/core/cmd/api/commands"
)

// @title CollabTodo API
// @version 1.0
// @description Collaborative to-do lists with shared workspaces, task assignment and notifications

// @contact.name CollabTodo Support
// @contact.url https://github.com/collabtodo/core

// @license.name MIT
// @license.url https://github.com/collabtodo/core/blob/main/LICENSE

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "collabtodo",
		Short: "CollabTodo API Server",
		Long:  `CollabTodo is a collaborative to-do list service with personal, couple and family workspaces, shared task lists, hashtag organization and a notification feed.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewRemindCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
