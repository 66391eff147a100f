package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/config"
	"github.com/rocketscienceinc/chess-backend/internal/tui"
)

// main - runs a local two-player board in the terminal.
func main() {
	configPath := flag.String("config", "./config.yml", "path to the config file")
	logPath := flag.String("log", "chessterm.log", "file to write logs to")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	conf := config.MustLoad(configPath)

	// the terminal belongs to the board, so logs go to a file
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	policy, err := chess.ParseReselectPolicy(conf.Game.Reselect)
	if err != nil {
		return fmt.Errorf("invalid reselect policy: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := tui.New(logger, chess.NewEngine(policy), conf.Game.ClockSeconds, conf.Game.TickInterval)
	if err = client.Run(ctx); err != nil {
		logger.Error("client stopped", "error", err)
		return err
	}

	return nil
}
