package term

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed terminal/session configuration: screen
// geometry, scrollback depth, and the handful of DEC modes a session
// wants to start with.
type Config struct {
	Columns         int    `yaml:"columns"`
	Rows            int    `yaml:"rows"`
	ScrollbackLines int    `yaml:"scrollback_lines"`
	Autowrap        bool   `yaml:"autowrap"`
	OriginMode      bool   `yaml:"origin_mode"`
	Answerback      string `yaml:"answerback,omitempty"`
}

// DefaultConfig mirrors the power-on state NewScreen resets to.
func DefaultConfig() Config {
	return Config{
		Columns:         80,
		Rows:            24,
		ScrollbackLines: 2000,
		Autowrap:        true,
		OriginMode:      false,
		Answerback:      "devcon",
	}
}

// DefaultConfigPath returns ./config/devconterm.yaml, creating a stub
// file there with DefaultConfig's values if none exists yet.
func DefaultConfigPath() string {
	dir := "config"
	path := filepath.Join(dir, "devconterm.yaml")

	if _, err := os.Stat(path); err == nil {
		log.Printf("Found config file: %s", path)
		return path
	}

	log.Printf("Config file not found, creating stub: %s", path)
	if err := createStubConfig(dir, path); err != nil {
		log.Printf("Warning: could not create stub config file: %v", err)
	}
	return path
}

func createStubConfig(dir, path string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := []byte("# devconterm configuration\n# columns/rows set the initial page size; scrollback_lines bounds history.\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stub config file: %w", err)
	}
	log.Printf("Created stub config file: %s", path)
	return nil
}

// LoadConfig reads a Config from path, falling back to DefaultConfig
// values for anything the file leaves unset (a missing file is not an
// error: the defaults apply and the caller can Save to materialize it).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Config file not found: %s (using defaults)", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory if needed.
func (c Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	log.Printf("Saved config to %s", path)
	return nil
}

// NewScreen builds a Screen sized and configured per c.
func (c Config) NewScreen() *Screen {
	s := NewScreen(c.Columns, c.Rows, c.ScrollbackLines)
	s.autowrap = c.Autowrap
	s.originMode = c.OriginMode
	if c.Answerback != "" {
		s.answerback = c.Answerback
	}
	return s
}
