package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds dawgo's persistent defaults: the automaton format to assume
// when --format is omitted, and a fuzzy replacement mapping (from -> to)
// used in place of --replace when that flag is omitted.
type Config struct {
	Format   string            `json:"format,omitempty"`
	Replaces map[string]string `json:"replaces,omitempty"`
}

// DefaultConfig returns dawgo's built-in defaults.
func DefaultConfig() Config {
	return Config{Format: "completion"}
}

// configFileName is the project-local config file dawgo looks for in the
// working directory.
const configFileName = ".dawgo.json"

// getGlobalConfigPath returns the path to the global config file, honoring
// $XDG_CONFIG_HOME if set in env, then falling back to the process
// environment and finally to the user's home directory.
func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "dawgo", "config.json")
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dawgo", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dawgo", "config.json")
}

// LoadConfig loads configuration with the following precedence (highest
// wins): built-in defaults, the global user config, the project config
// file (.dawgo.json in workDir), an explicit --config file, then CLI
// flag overrides, which the caller applies after LoadConfig returns.
func LoadConfig(workDir, explicitPath string, env map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if globalPath := getGlobalConfigPath(env); globalPath != "" {
		overlay, ok, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}
		if ok {
			cfg = mergeConfig(cfg, overlay)
		}
	}

	projectPath := filepath.Join(workDir, configFileName)
	overlay, ok, err := loadConfigFile(projectPath, false)
	if err != nil {
		return Config{}, err
	}
	if ok {
		cfg = mergeConfig(cfg, overlay)
	}

	if explicitPath != "" {
		path := explicitPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		overlay, ok, err := loadConfigFile(path, true)
		if err != nil {
			return Config{}, err
		}
		if !ok {
			return Config{}, fmt.Errorf("%w: %s", errConfigNotFound, explicitPath)
		}
		cfg = mergeConfig(cfg, overlay)
	}

	return cfg, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: %s", errConfigRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}
	return cfg, true, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if len(overlay.Replaces) > 0 {
		if base.Replaces == nil {
			base.Replaces = make(map[string]string, len(overlay.Replaces))
		}
		for k, v := range overlay.Replaces {
			base.Replaces[k] = v
		}
	}
	return base
}

// parseReplaceFlag parses a --replace flag value of the form
// "from1=to1,from2=to2" into a mapping suitable for CompileReplaces.
func parseReplaceFlag(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		from, to, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q (want from=to)", errBadReplaceEntry, part)
		}
		out[from] = to
	}
	return out, nil
}
