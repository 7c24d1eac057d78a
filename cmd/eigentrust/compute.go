// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/petar-djukic/go-eigentrust/internal/engine"
	"github.com/petar-djukic/go-eigentrust/internal/metrics"
	"github.com/petar-djukic/go-eigentrust/internal/report"
)

// newComputeCmd creates the "compute" command.
func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute global trust scores",
		Long: "Compute reads local trust (from,to[,value]) and optional pretrust (peer[,value]) CSV, " +
			"runs EigenTrust and prints every peer with its global trust, highest first.",
		RunE: runCompute,
	}

	cmd.Flags().StringP("local-trust", "l", "", "Local trust CSV file, or - for stdin (required)")
	cmd.Flags().StringP("pretrust", "p", "", "Pretrust CSV file (default: every peer equally)")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
	cmd.MarkFlagRequired("local-trust")

	return cmd
}

// configFromViper builds the engine config from flags, env and config file.
func configFromViper() engine.Config {
	return engine.Config{
		Alpha:         viper.GetFloat64("alpha"),
		Epsilon:       viper.GetFloat64("epsilon"),
		MaxIterations: viper.GetInt("max-iterations"),
		MinIterations: viper.GetInt("min-iterations"),
		CheckFreq:     viper.GetInt("check-freq"),
		NumLeaders:    viper.GetInt("num-leaders"),
		Workers:       viper.GetInt("workers"),
	}
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

// runCompute executes the pipeline and prints the result.
func runCompute(cmd *cobra.Command, args []string) (err error) {
	localPath, _ := cmd.Flags().GetString("local-trust")
	prePath, _ := cmd.Flags().GetString("pretrust")
	outPath, _ := cmd.Flags().GetString("output")

	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	logger, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	defer logger.Sync()

	deps := engine.Deps{Logger: logger}
	var reg *prometheus.Registry
	if path := viper.GetString("metrics-file"); path != "" {
		reg = prometheus.NewRegistry()
		rec, regErr := metrics.New(reg)
		if regErr != nil {
			return regErr
		}
		deps.Observer = rec
		defer func() {
			err = multierr.Append(err, metrics.WriteTextfile(path, reg))
		}()
	}

	runner, err := engine.New(configFromViper(), deps)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	local, err := openInput(cmd, localPath)
	if err != nil {
		return err
	}
	defer local.Close()

	var pre io.Reader
	if prePath != "" {
		f, err := openInput(cmd, prePath)
		if err != nil {
			return err
		}
		defer f.Close()
		pre = f
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := runner.Run(ctx, local, pre)
	if err != nil {
		logger.Error("compute failed", zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		out = f
	}
	return report.Write(out, result, format)
}
