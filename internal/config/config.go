package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pders01/git-pair/internal/pairing"
	"github.com/pders01/git-pair/internal/picker"
	"github.com/pders01/git-pair/internal/repo"
	"github.com/spf13/viper"
)

// Config mirrors the layout of config.toml
type Config struct {
	Repositories []string      `toml:"repositories"`
	Message      MessageConfig `toml:"message"`
	History      HistoryConfig `toml:"history"`
	Picker       PickerConfig  `toml:"picker"`
}

type MessageConfig struct {
	File string `toml:"file"`
}

type HistoryConfig struct {
	MaxCount int `toml:"max_count"`
}

type PickerConfig struct {
	Marker string `toml:"marker"`
	Height int    `toml:"height"`
}

// Defaults returns the configuration used when no file overrides it
func Defaults() Config {
	return Config{
		Repositories: []string{},
		Message:      MessageConfig{File: repo.DefaultMessageFile},
		History:      HistoryConfig{MaxCount: 0},
		Picker: PickerConfig{
			Marker: pairing.DefaultMarker,
			Height: picker.DefaultHeight,
		},
	}
}

// SetDefaults registers Defaults with viper
func SetDefaults() {
	d := Defaults()
	viper.SetDefault("repositories", d.Repositories)
	viper.SetDefault("message.file", d.Message.File)
	viper.SetDefault("history.max_count", d.History.MaxCount)
	viper.SetDefault("picker.marker", d.Picker.Marker)
	viper.SetDefault("picker.height", d.Picker.Height)
}

// Dir returns $HOME/.config/pair
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pair"), nil
}

// WriteDefault writes Defaults to path unless a file already exists there.
// It reports whether the file was created.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(Defaults()); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// GetMessageFile returns the message file name, relative to the git dir
func GetMessageFile() string {
	if name := viper.GetString("message.file"); name != "" {
		return name
	}
	return repo.DefaultMessageFile
}

// GetRepositories returns extra repository directories to offer
func GetRepositories() []string {
	return viper.GetStringSlice("repositories")
}

// GetHistoryMaxCount returns how many commits to scan for authors, 0 for all
func GetHistoryMaxCount() int {
	n := viper.GetInt("history.max_count")
	if n < 0 {
		return 0
	}
	return n
}

func GetPickerMarker() string {
	if m := viper.GetString("picker.marker"); m != "" {
		return m
	}
	return pairing.DefaultMarker
}

func GetPickerHeight() int {
	if h := viper.GetInt("picker.height"); h > 0 {
		return h
	}
	return picker.DefaultHeight
}
