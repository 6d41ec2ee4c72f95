// Package config loads game settings from defaults, an optional YAML file
// and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"

	"grid-snake/audio"
	"grid-snake/game/types"
	"grid-snake/storage"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Frontends
const (
	UIRaylib   = "raylib"
	UITerminal = "terminal"
)

type StoreConfig struct {
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`
}

type Config struct {
	Game     types.Settings `yaml:"game"`
	UI       string         `yaml:"ui"`
	Store    StoreConfig    `yaml:"store"`
	Audio    audio.Config   `yaml:"audio"`
	Mute     bool           `yaml:"mute"`
	Glow     bool           `yaml:"glow"`
	LogLevel string         `yaml:"log_level"`
	LogFile  string         `yaml:"log_file"`

	// ShowHistory prints the stored game history and exits.
	ShowHistory bool `yaml:"-"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Game: types.DefaultSettings(),
		UI:   UIRaylib,
		Store: StoreConfig{
			Kind: storage.KindJSON,
			Path: "data/snake.json",
		},
		Audio: audio.Config{
			Volume: 1,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse builds the configuration from args (without the program name).
// Flags given explicitly override values from the -config file.
func Parse(args []string, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("grid-snake", flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "Path to a YAML config file")
	flagged := Default()
	flagged.bindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *configPath != "" {
		loaded, err := Load(*configPath)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		cfg.apply(&flagged, f.Name)
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) bindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.UI, "ui", c.UI, "Frontend: raylib or terminal")
	fs.StringVar(&c.Store.Kind, "store", c.Store.Kind, "High score store: json, sqlite or memory")
	fs.StringVar(&c.Store.Path, "store-path", c.Store.Path, "Path of the json file or sqlite database")
	fs.IntVar(&c.Game.GridSize, "grid", c.Game.GridSize, "Cells per side of the board")
	fs.IntVar(&c.Game.SquareSize, "square", c.Game.SquareSize, "Pixels per cell")
	fs.IntVar(&c.Game.BaseSpeed, "speed", c.Game.BaseSpeed, "Milliseconds between moves at the start (lower = faster)")
	fs.IntVar(&c.Game.SpeedDecrement, "speed-step", c.Game.SpeedDecrement, "Milliseconds removed from the interval per food")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "Disable sound")
	fs.BoolVar(&c.Glow, "glow", c.Glow, "Draw a glow around the snake and food (raylib only)")
	fs.StringVar(&c.Audio.EatFile, "eat-sound", c.Audio.EatFile, "Optional mp3 played when food is eaten")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Write logs to this file instead of stderr")
	fs.BoolVar(&c.ShowHistory, "history", c.ShowHistory, "Print stored game history and exit")
}

func (c *Config) apply(from *Config, name string) {
	switch name {
	case "ui":
		c.UI = from.UI
	case "store":
		c.Store.Kind = from.Store.Kind
	case "store-path":
		c.Store.Path = from.Store.Path
	case "grid":
		c.Game.GridSize = from.Game.GridSize
	case "square":
		c.Game.SquareSize = from.Game.SquareSize
	case "speed":
		c.Game.BaseSpeed = from.Game.BaseSpeed
	case "speed-step":
		c.Game.SpeedDecrement = from.Game.SpeedDecrement
	case "mute":
		c.Mute = from.Mute
	case "glow":
		c.Glow = from.Glow
	case "eat-sound":
		c.Audio.EatFile = from.Audio.EatFile
	case "log-level":
		c.LogLevel = from.LogLevel
	case "log-file":
		c.LogFile = from.LogFile
	case "history":
		c.ShowHistory = from.ShowHistory
	}
}

// Validate rejects unusable configurations.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	switch c.UI {
	case UIRaylib, UITerminal:
	default:
		return fmt.Errorf("unknown ui %q", c.UI)
	}
	switch c.Store.Kind {
	case storage.KindMemory:
	case storage.KindJSON, storage.KindSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store %s needs a path", c.Store.Kind)
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.Audio.Volume < 0 {
		return fmt.Errorf("audio volume must not be negative, got %v", c.Audio.Volume)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}
