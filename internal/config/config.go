// Package config loads runtime configuration from a TOML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultDataDir    = "data"
	DefaultListenAddr = ":8080"
	DefaultStoryLabel = "user-story"

	configFileName = ".strack.toml"

	configPathEnvKey  = "STRACK_CONFIG"
	dataDirEnvKey     = "STRACK_DATA_DIR"
	listenAddrEnvKey  = "STRACK_ADDR"
	githubTokenEnvKey = "STRACK_GITHUB_TOKEN"
)

// GitHubConfig holds the external issue tracker settings. An empty token
// means the issue endpoints serve canned data instead of hitting the API.
type GitHubConfig struct {
	Token      string `toml:"token"`
	Owner      string `toml:"owner"`
	Repo       string `toml:"repo"`
	StoryLabel string `toml:"story_label"`
}

// Config defines runtime configuration for strack.
type Config struct {
	DataDir    string       `toml:"data_dir"`
	ListenAddr string       `toml:"listen_addr"`
	GitHub     GitHubConfig `toml:"github"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		DataDir:    DefaultDataDir,
		ListenAddr: DefaultListenAddr,
		GitHub: GitHubConfig{
			StoryLabel: DefaultStoryLabel,
		},
	}
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Path returns the config file location: the STRACK_CONFIG override when
// set, else .strack.toml in the user's home directory.
func Path() (string, error) {
	if override := strings.TrimSpace(os.Getenv(configPathEnvKey)); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// Load reads the config file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if err := loadFileIfExists(path, &cfg); err != nil {
			return nil, err
		}
	}

	if dataDir := strings.TrimSpace(os.Getenv(dataDirEnvKey)); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if addr := strings.TrimSpace(os.Getenv(listenAddrEnvKey)); addr != "" {
		cfg.ListenAddr = addr
	}
	if token := strings.TrimSpace(os.Getenv(githubTokenEnvKey)); token != "" {
		cfg.GitHub.Token = token
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.GitHub.StoryLabel == "" {
		cfg.GitHub.StoryLabel = DefaultStoryLabel
	}

	return &cfg, nil
}
