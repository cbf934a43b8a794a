package config

import (
	"fmt"
	"time"

	"github.com/schuaBob/crew-server-go/internal/game"
	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Replay   ReplayConfig   `mapstructure:"replay"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     game.Config    `mapstructure:"game"`
}

// ServerConfig configures the websocket listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReplayConfig configures replay recording.
type ReplayConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// DatabaseConfig configures result persistence. An empty URL disables it.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads configuration from the given YAML file, falling back to
// defaults for anything unset. An empty path skips the file entirely and
// returns pure defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("default game parameters: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.dir", "replays")
	v.SetDefault("database.url", "")

	defaults := game.DefaultConfig()
	v.SetDefault("game.colors", defaults.Colors)
	v.SetDefault("game.ranks", defaults.Ranks)
	v.SetDefault("game.rockets", defaults.Rockets)
	v.SetDefault("game.players", defaults.Players)
	v.SetDefault("game.tasks", defaults.Tasks)
}
