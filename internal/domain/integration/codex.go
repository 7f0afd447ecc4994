package integration

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// CodexIntegration registers the server in Codex's config.toml. ConfigDir
// overrides the autodetected ~/.codex location.
type CodexIntegration struct {
	ConfigDir string
}

func (c *CodexIntegration) Name() string { return "codex" }

// Configure adds or replaces the server entry under the mcp_servers table.
func (c *CodexIntegration) Configure(entry ServerEntry) error {
	path, err := c.findConfig()
	if err != nil {
		return err
	}

	var config map[string]interface{}

	data, err := os.ReadFile(path)
	if err == nil {
		toml.Unmarshal(data, &config)
	}

	if config == nil {
		config = make(map[string]interface{})
	}

	mcpServers, ok := config["mcp_servers"].(map[string]interface{})
	if !ok {
		mcpServers = make(map[string]interface{})
		config["mcp_servers"] = mcpServers
	}

	mcpServers[EntryName] = entry

	newData, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, newData, 0644)
}

func (c *CodexIntegration) findConfig() (string, error) {
	dir := c.ConfigDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".codex")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
