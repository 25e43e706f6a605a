package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adrianliechti/docparse/config"
	"github.com/adrianliechti/docparse/pkg/otel"
	"github.com/adrianliechti/docparse/server"

	"github.com/joho/godotenv"
)

func main() {
	configFlag := flag.String("config", "config.yaml", "config file")
	envFlag := flag.String("env", ".env", "env file, loaded when present")

	flag.Parse()

	if err := godotenv.Load(*envFlag); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo

	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if os.Getenv("TELEMETRY") != "" {
		shutdown, err := otel.Setup(ctx, "docparse")

		if err != nil {
			panic(err)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdown(ctx); err != nil {
				slog.Error("failed to flush telemetry", "error", err)
			}
		}()
	}

	cfg, err := config.Parse(ctx, *configFlag)

	if err != nil {
		panic(err)
	}

	defer cfg.Close()

	s, err := server.New(cfg)

	if err != nil {
		panic(err)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		panic(err)
	}
}
