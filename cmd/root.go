// Package cmd wires the schedkit command line interface.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/epmodel/schedkit/config"
	"github.com/epmodel/schedkit/core/metrics"
	"github.com/epmodel/schedkit/core/schedule"
	"github.com/epmodel/schedkit/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "schedkit",
	Short: "Annual schedule resolution toolkit",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// sink receives engine events. Commands run with the no-op sink; serve
// swaps in the Prometheus one.
var sink metrics.Sink = metrics.NopSink{}

func recordExpansion(log logger.Logger, ev metrics.ExpansionEvent) {
	if err := sink.RecordExpansion(ev); err != nil {
		log.Warnf("record expansion: %v", err)
	}
}

func recordCompaction(log logger.Logger, ev metrics.CompactionEvent) {
	if err := sink.RecordCompaction(ev); err != nil {
		log.Warnf("record compaction: %v", err)
	}
}

// loadConfig reads the configured file. The default config.yaml is optional;
// any explicitly given path must exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && cfgPath == "config.yaml" {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

func loadRuleset(path string) (*schedule.Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	rs := &schedule.Ruleset{}
	if err := json.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	return rs, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
