package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnolang/xuan/internal"
	tt "github.com/gnolang/xuan/internal/types"
)

// DefaultConfigFile is the file written by `xuan init`.
const DefaultConfigFile = ".xuan.yaml"

// Config represents the overall configuration with a name and the severity
// of each rule.
type Config struct {
	Name  string                   `yaml:"name" toml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
}

// DefaultConfig lists every rule at its default severity.
func DefaultConfig() Config {
	return Config{
		Name:  "xuan",
		Rules: internal.DefaultRules(),
	}
}

// LoadConfig reads a YAML or TOML configuration file, chosen by extension.
// An empty path yields the default configuration.
func LoadConfig(configurationPath string) (Config, error) {
	if configurationPath == "" {
		return DefaultConfig(), nil
	}

	var config Config
	switch strings.ToLower(filepath.Ext(configurationPath)) {
	case ".toml":
		if _, err := toml.DecodeFile(configurationPath, &config); err != nil {
			return config, fmt.Errorf("error decoding %s: %w", configurationPath, err)
		}
	default:
		f, err := os.Open(configurationPath)
		if err != nil {
			return config, err
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&config); err != nil {
			return config, fmt.Errorf("error decoding %s: %w", configurationPath, err)
		}
	}

	known := internal.DefaultRules()
	for name := range config.Rules {
		if _, ok := known[name]; !ok {
			return config, fmt.Errorf("unknown rule %q in %s", name, configurationPath)
		}
	}
	return config, nil
}

// WriteConfig writes config to path as TOML when the extension says so and
// as YAML otherwise.
func WriteConfig(path string, config Config) error {
	var (
		d   []byte
		err error
	)
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		var sb strings.Builder
		err = toml.NewEncoder(&sb).Encode(config)
		d = []byte(sb.String())
	} else {
		d, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	if err := os.WriteFile(path, d, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
