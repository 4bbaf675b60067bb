package internal

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the application configuration.
type Config struct {
	Dir    string       `toml:"dir"`
	Editor EditorConfig `toml:"editor"`
	Board  BoardConfig  `toml:"board"`
}

type EditorConfig struct {
	Socket string `toml:"socket"`
}

type BoardConfig struct {
	MaxCardHeight int `toml:"max_card_height"`
}

// DefaultConfig returns the built-in defaults. Dir is left empty and
// resolved by TodoDir so the TODOTXT_DIR environment variable can win.
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{Socket: "/tmp/nvim.sock"},
		Board:  BoardConfig{MaxCardHeight: 6},
	}
}

// LoadConfig reads ~/.config/torudo/config.toml, falling back to defaults
// when the file is missing or unreadable.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config, nil
	}
	configPath := filepath.Join(homeDir, ".config", "torudo", "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return DefaultConfig(), nil
	}
	if config.Board.MaxCardHeight < 1 {
		config.Board.MaxCardHeight = DefaultConfig().Board.MaxCardHeight
	}
	return config, nil
}

// TodoDir resolves the todo directory: TODOTXT_DIR wins, then the config
// file, then ~/todotxt.
func (c *Config) TodoDir() string {
	if dir := os.Getenv("TODOTXT_DIR"); dir != "" {
		return filepath.Clean(dir)
	}
	if c.Dir != "" {
		return filepath.Clean(c.Dir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "todotxt"
	}
	return filepath.Join(home, "todotxt")
}

// EditorSocket resolves the Neovim socket path: NVIM_LISTEN_ADDRESS wins
// over the config file.
func (c *Config) EditorSocket() string {
	if socket := os.Getenv("NVIM_LISTEN_ADDRESS"); socket != "" {
		return socket
	}
	return c.Editor.Socket
}

// SaveDefaultConfig writes a commented default config file, leaving any
// existing file alone.
func SaveDefaultConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(homeDir, ".config", "torudo")
	configPath := filepath.Join(configDir, "config.toml")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	content := `# Torudo Configuration File

# Directory holding todo.txt, done.txt and the todos/ detail files.
# The TODOTXT_DIR environment variable overrides this.
# dir = "/home/you/todotxt"

[editor]
# Neovim socket to notify on navigation (nvim --listen <socket>).
# The NVIM_LISTEN_ADDRESS environment variable overrides this.
socket = "/tmp/nvim.sock"

[board]
# Maximum lines one card may occupy on the board.
max_card_height = 6
`
	return os.WriteFile(configPath, []byte(content), 0644)
}
