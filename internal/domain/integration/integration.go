// Package integration registers the server with local MCP client
// applications by editing their config files in place.
package integration

import (
	"github.com/recruitee-mcp/recruitee-mcp/internal/config"
)

// ServerEntry is the launch stanza written into a client config. It starts
// this binary in stdio mode with the connection settings passed via the
// environment.
type ServerEntry struct {
	Command string            `json:"command" toml:"command"`
	Args    []string          `json:"args" toml:"args"`
	Env     map[string]string `json:"env,omitempty" toml:"env,omitempty"`
}

// EntryName is the key the server is registered under in client configs.
const EntryName = "recruitee"

// NewServerEntry builds the stanza for the given executable and settings.
// The API token is deliberately included only when set; clients keep these
// files world-readable, so an empty token must not leave an empty key
// behind.
func NewServerEntry(executable string, cfg config.Config) ServerEntry {
	env := map[string]string{}
	for key, value := range cfg.Environ() {
		if value != "" {
			env[key] = value
		}
	}
	return ServerEntry{
		Command: executable,
		Args:    []string{"stdio"},
		Env:     env,
	}
}

// Integration configures one client application.
type Integration interface {
	Name() string
	Configure(entry ServerEntry) error
}
