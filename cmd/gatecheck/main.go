// Command gatecheck reconciles gate assignments between the daily gate
// plan and the AC FIDS feed, and builds aircraft tow sheets from a
// turnaround schedule.
//
// Usage:
//
//	gatecheck check --plan gates.xlsx --feed fids.xlsx --date 2026-08-31
//	gatecheck tow --schedule turns.xlsx [--output tow_sheet.csv]
//	gatecheck serve [--port 8080]
//
// All commands accept --config pointing at a YAML file overriding the
// built-in column maps, rule parameters and policy toggles.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"gatecheck/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the shared --config/--debug flags into a Config and a
// logger.
func loadConfig(path string, debug bool) (config.Config, *zap.Logger, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return cfg, nil, err
		}
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true
	if !debug {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return cfg, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}
