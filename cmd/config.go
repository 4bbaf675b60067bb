package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/maedana/torudo/internal"
)

// InitConfigCommand writes the default config file if none exists yet.
func InitConfigCommand() error {
	if err := internal.SaveDefaultConfig(); err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	fmt.Printf("Config file: %s\n", filepath.Join(home, ".config", "torudo", "config.toml"))
	return nil
}
