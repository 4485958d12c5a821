package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adrg/xdg"

	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
)

const logFile = "tictactoe/tictactoe.log"

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()

	logger, closeLog := initLogger(conf)
	defer closeLog()

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	return config.MustLoad(config.Locate())
}

// initialize logger. The terminal frontend owns the screen, so its logs go to a file.
func initLogger(conf *config.Config) (*slog.Logger, func()) {
	level, err := conf.SlogLevel()
	if err != nil {
		panic(err)
	}

	var (
		out      io.Writer = os.Stdout
		closeLog           = func() {}
	)

	if conf.Frontend == config.FrontendTerminal {
		file, err := openLogFile(conf.LogFile)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}

		out = file
		closeLog = func() {
			_ = file.Close()
		}
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), closeLog
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		statePath, err := xdg.StateFile(logFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve state file: %w", err)
		}

		path = statePath
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return file, nil
}
