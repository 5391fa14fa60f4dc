package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Storage struct {
		Path string
	}
	Game struct {
		Size        int
		MaxSize     int
		MaxTarget   int
		MaxAttempts int
	}
}

// Load reads an optional YAML file on top of defaults. A missing file is
// fine; a malformed one is not.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.path", "./puzzles.db")
	v.SetDefault("game.size", 5)
	v.SetDefault("game.maxsize", 6)
	v.SetDefault("game.maxtarget", 99)
	v.SetDefault("game.maxattempts", 20)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Game.Size < 2 || cfg.Game.Size > cfg.Game.MaxSize {
		return nil, fmt.Errorf("game size %d out of range 2..%d", cfg.Game.Size, cfg.Game.MaxSize)
	}
	return &cfg, nil
}
