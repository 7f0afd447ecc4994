// Package registry provides the JSON-RPC protocol types and the closed tool
// and resource catalog served by the Recruitee MCP server.
package registry

import "context"

// Handler is the uniform signature every tool handler is bound to at
// registration time. Arguments arrive as the decoded JSON object from the
// call_tool params; the returned value is marshalled into the response
// content item.
type Handler func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Tool describes one named operation exposed via call_tool.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema *JSONSchema `json:"inputSchema"`
	Handler     Handler     `json:"-"`
}

// Resource describes one URI-addressed read-only data view exposed via
// read_resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// JSONSchema represents a JSON Schema for tool input.
type JSONSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single property in a JSON Schema.
type PropertySchema struct {
	Type        interface{}     `json:"type,omitempty"` // string or []string for nullable types
	Description string          `json:"description,omitempty"`
	Default     interface{}     `json:"default,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}

// ToolSet is the closed tool registry. It is built once at server
// construction and never mutated afterward, so concurrent lookups need no
// synchronization. Registration order is preserved for list_tools.
type ToolSet struct {
	order []string
	tools map[string]Tool
}

// NewToolSet validates and registers the given tools. Registration fails on
// the first invalid or duplicate descriptor; a server with a broken catalog
// must not start.
func NewToolSet(tools ...Tool) (*ToolSet, error) {
	ts := &ToolSet{
		order: make([]string, 0, len(tools)),
		tools: make(map[string]Tool, len(tools)),
	}
	for _, t := range tools {
		if err := ValidateTool(t); err != nil {
			return nil, err
		}
		if _, dup := ts.tools[t.Name]; dup {
			return nil, &ValidationError{Field: t.Name, Message: "duplicate tool name"}
		}
		ts.order = append(ts.order, t.Name)
		ts.tools[t.Name] = t
	}
	return ts, nil
}

// Get looks a tool up by name.
func (ts *ToolSet) Get(name string) (Tool, bool) {
	t, ok := ts.tools[name]
	return t, ok
}

// List returns the catalog in registration order. Handlers are not exposed;
// the returned descriptors are safe to serialize.
func (ts *ToolSet) List() []Tool {
	out := make([]Tool, 0, len(ts.order))
	for _, name := range ts.order {
		out = append(out, ts.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (ts *ToolSet) Len() int {
	return len(ts.order)
}
