package api

import (
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/registry"
)

// Aliases so transport code reads naturally without importing registry.
type JSONRPCRequest = registry.JSONRPCRequest
type JSONRPCResponse = registry.JSONRPCResponse
type JSONRPCError = registry.JSONRPCError

const (
	ParseError            = registry.ParseError
	InvalidRequest        = registry.InvalidRequest
	MethodNotFound        = registry.MethodNotFound
	InvalidParams         = registry.InvalidParams
	InternalError         = registry.InternalError
	RemoteAPIError        = registry.RemoteAPIError
	RemoteError           = registry.RemoteError
	RemoteConnectionError = registry.RemoteConnectionError
)

// NewJSONRPCResponse creates a success response.
func NewJSONRPCResponse(id interface{}, result interface{}) JSONRPCResponse {
	return registry.NewJSONRPCResponse(id, result)
}

// NewJSONRPCErrorResponse creates an error response.
func NewJSONRPCErrorResponse(id interface{}, code int, message string) JSONRPCResponse {
	return registry.NewJSONRPCErrorResponse(id, code, message)
}
