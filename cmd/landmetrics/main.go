package main

import (
	"flag"
	"os"
	"time"

	"landmetrics/internal/logger"
	"landmetrics/pkg/batch"
	"landmetrics/pkg/config"
	"landmetrics/pkg/landscape"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory containing categorical .asc rasters")
	outputDir := flag.String("output", "", "Directory for metric rasters (default: alongside inputs)")
	configPath := flag.String("config", "landmetrics.yaml", "Path to YAML configuration file")
	windowSize := flag.Float64("window", 0, "Window side length in physical units (overrides config)")
	pixelSize := flag.Float64("pixel", 0, "Pixel side length in physical units (overrides config)")
	noData := flag.Int("nodata", -1, "No-data category code (overrides config)")
	workers := flag.Int("workers", 0, "Number of concurrent window workers (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	logFile := flag.String("log-file", "", "Rotating log file path (overrides config)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			os.Stderr.WriteString("failed to write config: " + err.Error() + "\n")
			os.Exit(1)
		}
		return
	}

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Flag overrides on top of config file values
	if *windowSize > 0 {
		cfg.Metrics.WindowSize = *windowSize
	}
	if *pixelSize > 0 {
		cfg.Metrics.PixelSize = *pixelSize
	}
	if *noData >= 0 {
		cfg.Metrics.NoDataValue = *noData
	}
	if *workers > 0 {
		cfg.Processing.NumWorkers = *workers
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *logLevel != "" {
		cfg.Output.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.Output.LogFile = *logFile
	}

	log := logger.New(cfg.Output.LogLevel, cfg.Output.LogFile)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Sugar().Fatalw("invalid configuration", "error", err)
	}

	runner := batch.NewRunner(&batch.Params{
		InputDir:  *inputDir,
		OutputDir: cfg.Output.Dir,
		Opts: landscape.Options{
			NoDataValue: cfg.Metrics.NoDataValue,
			WindowSize:  cfg.Metrics.WindowSize,
			PixelSize:   cfg.Metrics.PixelSize,
			NumWorkers:  cfg.Processing.NumWorkers,
		},
	}, log)

	start := time.Now()
	if err := runner.Run(); err != nil {
		log.Sugar().Fatalw("batch run failed", "error", err)
	}
	log.Sugar().Infow("done", "elapsed", time.Since(start).Round(time.Millisecond))
}
