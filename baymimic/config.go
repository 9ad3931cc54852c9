package baymimic

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	// Credentials may come from the environment (.env) instead of the file.
	if v := os.Getenv("BAYMIMIC_DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
	if v := os.Getenv("BAYMIMIC_DB_USER"); v != "" {
		cfg.DB.User = v
	}

	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	DB     DBConfig     `toml:"db"`
	Market MarketConfig `toml:"market"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type MarketConfig struct {
	// SweepIntervalSeconds controls how often the external driver scans for
	// listings past their end date. Finalization itself never schedules work.
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"`
	// SnapshotTTLSeconds bounds how long a session analytics snapshot is
	// served before it is recomputed.
	SnapshotTTLSeconds int  `toml:"snapshot_ttl_seconds"`
	SeedDemoData       bool `toml:"seed_demo_data"`
}
