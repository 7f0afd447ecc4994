package registry

import (
	"fmt"
	"regexp"
)

// ValidationError represents a single catalog validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateTool checks a tool descriptor before registration. The catalog is
// compiled in, so a failure here is a programming error surfaced at startup
// rather than a runtime condition.
func ValidateTool(t Tool) error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Message: "tool name is required"}
	}
	if !toolNamePattern.MatchString(t.Name) {
		return &ValidationError{Field: t.Name, Message: "tool name must be lowercase snake_case"}
	}
	if t.Description == "" {
		return &ValidationError{Field: t.Name, Message: "tool description is required"}
	}
	if t.Handler == nil {
		return &ValidationError{Field: t.Name, Message: "tool handler is required"}
	}
	if t.InputSchema == nil {
		return &ValidationError{Field: t.Name, Message: "tool input schema is required"}
	}
	if t.InputSchema.Type != "object" {
		return &ValidationError{Field: t.Name, Message: "tool input schema must be of type object"}
	}
	for _, req := range t.InputSchema.Required {
		if _, ok := t.InputSchema.Properties[req]; !ok {
			return &ValidationError{Field: t.Name, Message: fmt.Sprintf("required property %q not declared", req)}
		}
	}
	return nil
}
