// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// fsward is a sandboxed filesystem MCP server. It speaks the protocol on
// stdin/stdout and only ever touches paths inside the directories given
// on the command line. Write and destructive tools stay unregistered
// unless their flags are set.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fsward/internal/config"
	"fsward/internal/tools"
)

const version = "0.1.0"

var (
	allowWrite       bool
	allowDestructive bool
	maxReadSize      int64
	maxDepth         int
	debugMode        bool
	logFile          string
)

var rootCmd = &cobra.Command{
	Use:   "fsward [flags] <allowed-dir> [<allowed-dir>...]",
	Short: "Sandboxed filesystem access over MCP",
	Long: `fsward serves filesystem tools over the Model Context Protocol on
stdio. Every operation is confined to the allowed directories given as
arguments; paths are canonicalized before any check, so symlinks cannot
escape the sandbox. Read-only tools are always available, write tools
require --allow-write, destructive tools require --allow-destructive.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&allowWrite, "allow-write", false, "enable write_file, edit_file and create_directory")
	rootCmd.Flags().BoolVar(&allowDestructive, "allow-destructive", false, "enable delete_file, delete_directory and move_file (implies --allow-write)")
	rootCmd.Flags().Int64Var(&maxReadSize, "max-read-size", config.DefaultMaxReadSize, "maximum file size in bytes for whole-file reads")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", config.DefaultMaxDepth, "maximum directory depth for tree and search traversal")
	rootCmd.Flags().BoolVarP(&debugMode, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path (defaults to stderr; stdout carries the protocol)")
}

func run(cmd *cobra.Command, args []string) error {
	logger := initLogger(debugMode, logFile)

	cfg := config.Config{
		AllowedDirectories: args,
		AllowWrite:         allowWrite || allowDestructive,
		AllowDestructive:   allowDestructive,
		MaxReadSize:        maxReadSize,
		MaxDepth:           maxDepth,
	}
	cfg, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info().
		Strs("allowed_directories", cfg.AllowedDirectories).
		Str("tier", cfg.Tier().String()).
		Msg("fsward starting")

	svc := tools.NewService(cfg, logger)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fsward",
		Version: version,
	}, nil)
	svc.Install(server)

	if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		return err
	}
	logger.Info().Msg("fsward exiting")
	return nil
}

func initLogger(debug bool, logFilePath string) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// stdout is the MCP wire, so logs go to stderr or a file
	var output io.Writer = os.Stderr
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		output = file
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
