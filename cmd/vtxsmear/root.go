package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/vtxsmear/internal/config"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/logger"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/pipeline"
	"github.com/gyaneshwarpardhi/vtxsmear/internal/random"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "vtxsmear",
	Short: "Gaussian event-vertex smearing for generator events",
	Long: `vtxsmear reads generator-level events, displaces their vertices by a
Gaussian beam-spot sample plus a fixed time offset, and publishes the
smeared records.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "configs/vtxsmear.yaml", "path to YAML config")
	rootCmd.AddCommand(serveCmd, smearCmd, checkCmd)
}

// app bundles everything the subcommands build from the config.
type app struct {
	loader *config.Loader
	rng    *random.Service
	reg    *pipeline.Registry
}

// setup loads and validates the config, initialises logging and builds the
// first pipeline. A module configuration error stops here.
func setup() (*app, *pipeline.Pipeline, error) {
	loader, err := config.NewLoader(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	cfg := loader.Config()
	logger.Init(cfg.Log, os.Stderr)

	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}
	rt := &app{
		loader: loader,
		rng:    random.NewService(cfg.Random.Seed),
		reg:    pipeline.DefaultRegistry(),
	}
	p, err := rt.build(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build pipeline: %w", err)
	}
	slog.Info("pipeline built", "modules", p.Modules(), "source", p.Source().String(), "seed", rt.rng.Seed())
	return rt, p, nil
}

func (rt *app) build(cfg *config.Config) (*pipeline.Pipeline, error) {
	return pipeline.Build(cfg, rt.reg, rt.rng)
}
