package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// ClaudeIntegration registers the server in Claude Desktop's config file.
// ConfigDir overrides the autodetected location; tests point it at a temp
// directory.
type ClaudeIntegration struct {
	ConfigDir string
}

func (c *ClaudeIntegration) Name() string { return "claude-desktop" }

// Configure adds or replaces the server entry in claude_desktop_config.json.
// Existing entries for other servers are preserved.
func (c *ClaudeIntegration) Configure(entry ServerEntry) error {
	path, err := c.findConfig()
	if err != nil {
		return err
	}

	var config map[string]interface{}

	data, err := os.ReadFile(path)
	if err == nil {
		json.Unmarshal(data, &config)
	}

	if config == nil {
		config = make(map[string]interface{})
	}

	mcpServers, ok := config["mcpServers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		config["mcpServers"] = mcpServers
	}

	mcpServers[EntryName] = entry

	newData, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, newData, 0644)
}

func (c *ClaudeIntegration) findConfig() (string, error) {
	dir := c.ConfigDir
	if dir == "" {
		switch runtime.GOOS {
		case "darwin":
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			dir = filepath.Join(home, "Library", "Application Support", "Claude")
		case "windows":
			appData := os.Getenv("APPDATA")
			if appData == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return "", err
				}
				appData = filepath.Join(home, "AppData", "Roaming")
			}
			dir = filepath.Join(appData, "Claude")
		default:
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			dir = filepath.Join(home, ".config", "Claude")
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "claude_desktop_config.json"), nil
}
