package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the repository root.
const FileName = ".small-git.yaml"

// Config represents the complete small-git configuration.
type Config struct {
	// Proxy is exported as HTTP_PROXY/HTTPS_PROXY for housekeeping commands that ask for it
	Proxy string `yaml:"proxy,omitempty"`

	// Env lists the commands that set up the development environment
	Env CommandSet `yaml:"env"`

	// Check configures the linters run by the check command
	Check CheckConfig `yaml:"check"`

	// Scoop lists the commands that install tooling
	Scoop CommandSet `yaml:"scoop"`

	// Clean configures the delete command
	Clean CleanConfig `yaml:"clean"`

	// Log configures the rotating log file
	Log LogConfig `yaml:"log"`
}

// CommandSet is a list of shell commands and whether they need the proxy.
type CommandSet struct {
	Commands []string `yaml:"commands"`
	UseProxy bool     `yaml:"useProxy"`
}

// CheckConfig holds linter settings.
type CheckConfig struct {
	// Dirs is substituted for {dirs} in every command
	Dirs string `yaml:"dirs"`
	// Commands are templates run in order; the first failure stops the check
	Commands []string `yaml:"commands"`
}

// CleanConfig holds directory cleanup settings.
type CleanConfig struct {
	// Dirs are emptied and recreated with a .gitkeep
	Dirs []string `yaml:"dirs"`
	// ForceDirs are removed entirely
	ForceDirs []string `yaml:"forceDirs"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	File       string `yaml:"file,omitempty"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
}

// Default returns the built-in configuration.
func Default() *Config {
	venv := filepath.Join(".venv", "Scripts")
	return &Config{
		Env: CommandSet{Commands: []string{"uv sync"}},
		Check: CheckConfig{
			Dirs: "src tests",
			Commands: []string{
				filepath.Join(venv, "ruff") + " check {dirs} --fix",
				filepath.Join(venv, "pyright") + " {dirs} --pythonpath " + filepath.Join(venv, "python"),
			},
		},
		Scoop: CommandSet{Commands: []string{"powershell scripts/install_scoop.ps1"}},
		Clean: CleanConfig{
			Dirs:      []string{"logs", "output"},
			ForceDirs: []string{"MsCamRegLog"},
		},
		Log: LogConfig{
			MaxSize:    1,
			MaxBackups: 2,
			MaxAge:     30,
		},
	}
}

// Path returns the config file to read: explicit, then SMALL_GIT_CONFIG,
// then .small-git.yaml under root.
func Path(explicit, root string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("SMALL_GIT_CONFIG"); env != "" {
		return env
	}
	return filepath.Join(root, FileName)
}

// Load reads the config at path on top of the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if proxy := os.Getenv("SMALL_GIT_PROXY"); proxy != "" {
		c.Proxy = proxy
	}
	if file := os.Getenv("SMALL_GIT_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

// Validate rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		return fmt.Errorf("log rotation settings must not be negative")
	}
	if (c.Env.UseProxy || c.Scoop.UseProxy) && c.Proxy == "" {
		return fmt.Errorf("useProxy is set but no proxy is configured")
	}
	for _, dir := range append(append([]string{}, c.Clean.Dirs...), c.Clean.ForceDirs...) {
		if !filepath.IsLocal(dir) || filepath.Clean(dir) == "." {
			return fmt.Errorf("clean directory %q must be a relative path inside the repository", dir)
		}
	}
	return nil
}
