package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe/internal/engine"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	configFile      = "tictactoe/config.yml"
	localConfigFile = "config.yml"
)

const (
	FrontendTerminal = "terminal"
	FrontendHTTP     = "http"

	StorageMemory = "memory"
	StorageRedis  = "redis"

	DifficultyEasy = "easy"
	DifficultyHard = "hard"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"TICTACTOE_LOG_FILE"`
	Frontend string `yaml:"frontend" env:"TICTACTOE_FRONTEND" env-default:"terminal"`
	HTTPPort string `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	Storage  string `yaml:"storage" env:"TICTACTOE_STORAGE" env-default:"memory"`
	Redis    Redis  `yaml:"redis" env-prefix:"TICTACTOE_REDIS_"`
	Match    Match  `yaml:"match" env-prefix:"TICTACTOE_MATCH_"`
}

type Redis struct {
	Host string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port string        `yaml:"port" env:"PORT" env-default:"6379"`
	TTL  time.Duration `yaml:"ttl" env:"TTL" env-default:"24h"`
}

type Match struct {
	Mode         string `yaml:"mode" env:"MODE" env-default:"ai"`
	ComputerSide string `yaml:"computer-side" env:"COMPUTER_SIDE" env-default:"opponent"`

	// easy plays random moves, hard plays perfectly
	Difficulty string `yaml:"difficulty" env:"DIFFICULTY" env-default:"hard"`

	// Seed of the engine's random level; zero seeds from the clock.
	Seed uint64 `yaml:"seed" env:"SEED" env-default:"0"`
}

// Locate - returns the config file to load: tictactoe/config.yml in the XDG
// config dirs, then config.yml in the working directory. An empty path means
// only the environment is read.
func Locate() string {
	if path, err := xdg.SearchConfigFile(configFile); err == nil {
		return path
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}

	return ""
}

// MustLoad - load all configurations from path, or from the environment when
// path is empty.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Frontend != FrontendTerminal && that.Frontend != FrontendHTTP {
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalidConfig, that.Frontend)
	}

	if that.Storage != StorageMemory && that.Storage != StorageRedis {
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, that.Storage)
	}

	if _, err := that.SlogLevel(); err != nil {
		return err
	}

	if _, err := that.Match.GameMode(); err != nil {
		return err
	}

	if _, err := that.Match.Side(); err != nil {
		return err
	}

	if _, err := that.Match.EngineLevel(); err != nil {
		return err
	}

	return nil
}

func (that *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(that.LogLevel)); err != nil {
		return level, fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}

	return level, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Match) GameMode() (entity.Mode, error) {
	mode, err := entity.ParseMode(that.Mode)
	if err != nil {
		return mode, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return mode, nil
}

// Side - the side the computer plays.
func (that *Match) Side() (entity.Mark, error) {
	side, err := entity.ParseMark(that.ComputerSide)
	if err != nil || !side.IsSide() {
		return side, fmt.Errorf("%w: computer side %q", ErrInvalidConfig, that.ComputerSide)
	}

	return side, nil
}

func (that *Match) EngineLevel() (engine.Level, error) {
	switch that.Difficulty {
	case DifficultyEasy:
		return engine.LevelRandom, nil
	case DifficultyHard:
		return engine.LevelOptimal, nil
	default:
		return engine.LevelOptimal, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, that.Difficulty)
	}
}
