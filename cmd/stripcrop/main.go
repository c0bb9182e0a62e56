package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"strip-cropper/internal/config"
	"strip-cropper/internal/server"
	"strip-cropper/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("stripcrop %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("stripcrop - HTTP service that detects and crops pool test strips from photos")
			fmt.Println()
			fmt.Println("Usage: stripcrop [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT                 Listen port (default 8080)")
			fmt.Println("  OUTPUT_FOLDER        Folder for saved crops (default ./output)")
			fmt.Println("  MAX_UPLOAD_BYTES     Upload size cap (default 10485760)")
			fmt.Println("  LOG_LEVEL            debug, info, warn or error (default info)")
			fmt.Println()
			fmt.Println("Detection thresholds (MIN_AREA_RATIO, MAX_AREA_RATIO, MIN_ASPECT_RATIO,")
			fmt.Println("MAX_ASPECT_RATIO, CROP_MARGIN_PERCENT, CANNY_LOW, CANNY_HIGH) can be")
			fmt.Println("overridden the same way. A .env file is honored when present.")
			return
		}
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("parse log level")
	}
	log = log.Level(level)

	store, err := storage.New(cfg.OutputFolder)
	if err != nil {
		log.Fatal().Err(err).Msg("init output folder")
	}
	log.Info().Str("folder", store.Root()).Msg("output folder ready")

	srv := server.New(cfg.Detector, store, cfg.MaxUploadBytes, Version, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("version", Version).Msg("server starting")
	if err := srv.Run(ctx, addr); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}
