// Package config loads the application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/terminal"
)

// DefaultTerminal is used when the config does not name one.
const DefaultTerminal = string(terminal.TypeITerm)

// fileConfig mirrors the YAML schema. Frame blocks use pointers so that an
// absent block can fall back to a sensible default while an explicit
// `enabled: false` is respected.
type fileConfig struct {
	Terminal         string             `yaml:"terminal"`
	LeftFrame        *model.FrameConfig `yaml:"left_frame"`
	RightFrame       *model.FrameConfig `yaml:"right_frame"`
	DefaultAICommand string             `yaml:"default_ai_command"`
	SetupCommands    []string           `yaml:"setup_commands"`
	GitHubIssues     bool               `yaml:"github_issues"`
	WorktreeBasePath string             `yaml:"worktree_base_path"`
	BaseBranch       string             `yaml:"base_branch"`
}

// LoadFromFile reads and parses a YAML config file, applying defaults and
// validating the terminal type.
func LoadFromFile(path string) (model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return model.Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	cfg := model.Config{
		Terminal:         fc.Terminal,
		DefaultAICommand: fc.DefaultAICommand,
		SetupCommands:    fc.SetupCommands,
		GitHubIssues:     fc.GitHubIssues,
		WorktreeBasePath: fc.WorktreeBasePath,
		BaseBranch:       fc.BaseBranch,
	}

	if cfg.Terminal == "" {
		cfg.Terminal = DefaultTerminal
	}
	if !knownTerminal(cfg.Terminal) {
		return model.Config{}, fmt.Errorf("unknown terminal %q (expected iterm, terminal, or tmux)", cfg.Terminal)
	}

	// Absent frame blocks default to a single enabled left frame.
	if fc.LeftFrame != nil {
		cfg.LeftFrame = *fc.LeftFrame
	} else {
		cfg.LeftFrame = model.FrameConfig{Enabled: true}
	}
	if fc.RightFrame != nil {
		cfg.RightFrame = *fc.RightFrame
	} else {
		cfg.RightFrame = model.FrameConfig{Enabled: false}
	}

	if strings.HasPrefix(cfg.WorktreeBasePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return model.Config{}, fmt.Errorf("expanding home directory: %w", err)
		}
		cfg.WorktreeBasePath = filepath.Join(home, cfg.WorktreeBasePath[2:])
	}

	return cfg, nil
}

func knownTerminal(name string) bool {
	for _, t := range terminal.KnownTypes() {
		if string(t) == name {
			return true
		}
	}
	return false
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kodama", "config.yaml"), nil
}

const configTemplate = `# kodama configuration
#
# terminal: iterm | terminal | tmux
terminal: iterm

left_frame:
  enabled: true
  command: ""

right_frame:
  enabled: true
  command: ""

# Command used to hand issue context to an AI assistant in the right frame.
default_ai_command: ""

# Commands run inside a fresh worktree, in order. Remove to skip setup.
# setup_commands:
#   - npm install

github_issues: true

# Where new worktrees are created. Empty means next to the repository.
# worktree_base_path: ~/worktrees

# Base branch for new worktrees. Empty means auto-detect.
# base_branch: main
`

// EnsureDefault writes a commented config template if none exists yet.
// Returns the config path and whether a file was created.
func EnsureDefault() (string, bool, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", false, err
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		return "", false, fmt.Errorf("writing default config: %w", err)
	}

	return path, true, nil
}

// Load resolves the config path (flag override or default location,
// creating a template on first run) and loads the config.
func Load(flagPath string) (model.Config, error) {
	if flagPath != "" {
		cfg, err := LoadFromFile(flagPath)
		if errors.Is(err, os.ErrNotExist) {
			return model.Config{}, fmt.Errorf("config file not found: %w", err)
		}
		return cfg, err
	}

	path, created, err := EnsureDefault()
	if err != nil {
		return model.Config{}, err
	}
	if created {
		fmt.Fprintf(os.Stderr, "Created config template at %s\n", path)
	}
	return LoadFromFile(path)
}
