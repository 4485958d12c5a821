package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/engine"
	"github.com/rocketscienceinc/tictactoe/internal/repository"
	"github.com/rocketscienceinc/tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	mode, err := conf.Match.GameMode()
	if err != nil {
		return err
	}

	computerSide, err := conf.Match.Side()
	if err != nil {
		return err
	}

	level, err := conf.Match.EngineLevel()
	if err != nil {
		return err
	}

	engineOptions := []engine.Option{engine.WithLogger(logger)}
	if conf.Match.Seed != 0 {
		engineOptions = append(engineOptions, engine.WithSeed(conf.Match.Seed))
	}

	decider := engine.New(engineOptions...)

	switch conf.Frontend {
	case config.FrontendHTTP:
		repo, closeRepo, err := newMatchRepository(ctx, log, conf)
		if err != nil {
			return err
		}
		defer closeRepo()

		manager := usecase.NewMatchManager(logger, repo, decider, usecase.MatchDefaults{
			ComputerSide: computerSide,
			Level:        level,
		})
		router := rest.NewRouter(logger, rest.NewHandlers(logger, manager, mode))

		log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
		if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		log.Info("Application context canceled, shutting down")

		return nil
	default:
		match := tictactoe.NewMatch(decider,
			tictactoe.WithMode(mode),
			tictactoe.WithComputerSide(computerSide),
			tictactoe.WithLevel(level),
		)

		log.Info("Starting terminal UI", "mode", mode.String(), "computer_side", computerSide.String())

		return terminal.New(terminal.NewController(logger, match)).Run(ctx)
	}
}

func newMatchRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.MatchRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemoryMatchRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewMatchRepository(redisStorage.Connection, conf.Redis.TTL), closeStorage, nil
}
