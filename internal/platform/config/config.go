package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultLogLevel     = "warn"
	defaultTickInterval = time.Second
	logLevelEnv         = "POMO_LOG_LEVEL"
)

type Config struct {
	DataDir      string
	DBPath       string
	SettingsPath string
	StatePath    string
	HooksDir     string
	LogLevel     string
	TickInterval time.Duration
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	level := defaultLogLevel
	if v := strings.TrimSpace(os.Getenv(logLevelEnv)); v != "" {
		level = strings.ToLower(v)
	}
	return Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(dataDir, "pomo.db"),
		SettingsPath: filepath.Join(dataDir, "settings.yaml"),
		StatePath:    filepath.Join(dataDir, "timer-state.json"),
		HooksDir:     filepath.Join(dataDir, "hooks"),
		LogLevel:     level,
		TickInterval: defaultTickInterval,
	}, nil
}

// DefaultDataDir resolves the per-user data directory, falling back to a
// dot directory in the working directory when no config dir is known.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".pomo"
	}
	return filepath.Join(dir, "pomo")
}
