// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command eigentrust computes EigenTrust global trust scores from CSV
// local trust and pretrust.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/go-eigentrust/internal/engine"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "eigentrust",
		Short:        "EigenTrust global trust calculator",
		Long:         "eigentrust reads a local trust graph and pretrust distribution from CSV and ranks every peer by global trust.",
		SilenceUsage: true,
	}

	defaults := engine.DefaultConfig()

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.Float64("alpha", defaults.Alpha, "Weight of pretrust in every iteration, in [0, 1]")
	flags.Float64("epsilon", 0, "Convergence threshold (0 = 1e-6 / number of peers)")
	flags.Int("max-iterations", 0, "Iteration budget (0 = unbounded)")
	flags.Int("min-iterations", defaults.MinIterations, "First checked iteration and required flat tail length")
	flags.Int("check-freq", defaults.CheckFreq, "Iterations between convergence checks")
	flags.Int("num-leaders", 0, "Top peers compared by the flat tail check (0 = all)")
	flags.Int("workers", 0, "Goroutines per matrix-vector product (0 = GOMAXPROCS)")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("format", "json", "Output format: json, yaml or csv")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after computing")

	// Bind flags to viper.
	for _, name := range []string{
		"alpha", "epsilon", "max-iterations", "min-iterations", "check-freq",
		"num-leaders", "workers", "log-level", "format", "metrics-file",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: EIGENTRUST_ALPHA, EIGENTRUST_LOG_LEVEL, etc.
	viper.SetEnvPrefix("EIGENTRUST")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".eigentrust")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newComputeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print eigentrust version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "eigentrust %s\n", version)
		},
	}
}

// newLogger builds the process logger, writing JSON to stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
