// Package api contains the JSON-RPC dispatcher and the HTTP and stdio
// transport adapters of the Recruitee MCP server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/recruitee"
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/registry"
	"github.com/recruitee-mcp/recruitee-mcp/internal/logging"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "recruitee-mcp"
	serverVersion   = "0.1.0"
)

// Built-in JSON-RPC methods.
const (
	MethodInitialize    = "initialize"
	MethodPing          = "ping"
	MethodListResources = "list_resources"
	MethodReadResource  = "read_resource"
	MethodListTools     = "list_tools"
	MethodCallTool      = "call_tool"
)

// Server is the method registry and dispatcher. It is stateless between
// requests; the tool and resource catalogs are built once at construction
// and never mutated, so a single instance serves concurrent transports.
type Server struct {
	client    *recruitee.Client
	tools     *registry.ToolSet
	resources []registry.Resource
	logger    *logging.Logger
}

// NewServer wires the tool catalog to the given gateway client.
func NewServer(client *recruitee.Client, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{
		client: client,
		logger: logger,
		resources: []registry.Resource{
			{
				URI:         "recruitee://offers",
				Name:        "Job offers",
				Description: "Published job offers for the configured company.",
			},
			{
				URI:         "recruitee://pipelines",
				Name:        "Pipelines",
				Description: "Recruiting pipelines and stages.",
			},
		},
	}
	tools, err := registry.NewToolSet(s.toolCatalog()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}
	s.tools = tools
	return s, nil
}

// invalidParamsError marks failures that map to code -32602.
type invalidParamsError struct {
	msg string
}

func (e *invalidParamsError) Error() string { return e.msg }

// HandleRaw parses one raw JSON-RPC payload and dispatches it. An
// unparseable payload yields a Parse error response with a null id, since
// the request could not be associated.
func (s *Server) HandleRaw(ctx context.Context, payload []byte) JSONRPCResponse {
	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return NewJSONRPCErrorResponse(nil, ParseError, "Parse error")
	}
	return s.Handle(ctx, decoded)
}

// Handle validates the envelope and dispatches the request. Every code path
// returns a well-formed response; nothing escapes to the transport.
func (s *Server) Handle(ctx context.Context, payload interface{}) (resp JSONRPCResponse) {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return invalidRequest(nil, "Request must be an object")
	}

	id := obj["id"]

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while dispatching request", "panic", r)
			resp = registry.NewJSONRPCErrorResponseData(id, InternalError, "Internal error", fmt.Sprint(r))
		}
	}()

	if v, _ := obj["jsonrpc"].(string); v != registry.JSONRPCVersion {
		return invalidRequest(id, "jsonrpc must be '2.0'")
	}
	if _, present := obj["id"]; !present {
		return invalidRequest(nil, "Missing id")
	}
	// A present-but-null id is rejected rather than treated as a
	// notification; this server always answers.
	if id == nil {
		return invalidRequest(nil, "id must not be null")
	}
	method, _ := obj["method"].(string)
	if method == "" {
		return invalidRequest(id, "Method must be a non-empty string")
	}

	params := map[string]interface{}{}
	if raw, present := obj["params"]; present && raw != nil {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return registry.NewJSONRPCErrorResponseData(id, InvalidParams, "Invalid params", "Params must be an object")
		}
		params = m
	}

	return s.dispatch(ctx, id, method, params)
}

func invalidRequest(id interface{}, detail string) JSONRPCResponse {
	return registry.NewJSONRPCErrorResponseData(id, InvalidRequest, "Invalid Request", detail)
}

func (s *Server) dispatch(ctx context.Context, id interface{}, method string, params map[string]interface{}) JSONRPCResponse {
	s.logger.Debug("dispatching request", "method", method, "id", id)

	var (
		result interface{}
		err    error
	)
	switch method {
	case MethodInitialize:
		result = s.handleInitialize()
	case MethodPing:
		result = "pong"
	case MethodListResources:
		result = map[string]interface{}{"resources": s.resources}
	case MethodReadResource:
		result, err = s.handleReadResource(ctx, params)
	case MethodListTools:
		result = map[string]interface{}{"tools": s.tools.List()}
	case MethodCallTool:
		result, err = s.handleCallTool(ctx, params)
	default:
		return NewJSONRPCErrorResponse(id, MethodNotFound, fmt.Sprintf("Unknown method: %s", method))
	}

	if err != nil {
		return s.errorResponse(id, method, err)
	}
	return NewJSONRPCResponse(id, result)
}

// errorResponse is the single point translating handler failures into the
// JSON-RPC error taxonomy.
func (s *Server) errorResponse(id interface{}, method string, err error) JSONRPCResponse {
	var (
		apiErr    *recruitee.APIError
		connErr   *recruitee.ConnectionError
		paramsErr *invalidParamsError
	)
	switch {
	case errors.As(err, &paramsErr):
		return registry.NewJSONRPCErrorResponseData(id, InvalidParams, "Invalid params", paramsErr.msg)
	case errors.As(err, &apiErr):
		code := apiErr.StatusCode
		if code <= 0 {
			code = RemoteAPIError
		}
		return NewJSONRPCErrorResponse(id, code, err.Error())
	case errors.As(err, &connErr):
		return NewJSONRPCErrorResponse(id, RemoteConnectionError, err.Error())
	case errors.Is(err, recruitee.ErrRemote):
		return NewJSONRPCErrorResponse(id, RemoteError, err.Error())
	default:
		s.logger.Error("unexpected error while handling request", "method", method, "error", err)
		return registry.NewJSONRPCErrorResponseData(id, InternalError, "Internal error", err.Error())
	}
}

func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"serverInfo": map[string]string{
			"name":    serverName,
			"version": serverVersion,
		},
		"capabilities": map[string]interface{}{
			"resources": map[string]bool{
				"list": true,
				"read": true,
			},
			"tools": map[string]bool{
				"list": true,
				"call": true,
			},
		},
	}
}

func (s *Server) handleReadResource(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	uri, _ := params["uri"].(string)

	var (
		data map[string]interface{}
		err  error
	)
	switch uri {
	case "recruitee://offers":
		data, err = s.client.ListOffers(ctx, recruitee.ListOffersOptions{IncludeDescription: true})
	case "recruitee://pipelines":
		data, err = s.client.ListPipelines(ctx)
	default:
		return nil, &recruitee.ValidationError{Message: fmt.Sprintf("Unsupported resource URI: %v", params["uri"])}
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"contents": []interface{}{jsonContent(data)}}, nil
}

func (s *Server) handleCallTool(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	name, _ := params["name"].(string)
	tool, ok := s.tools.Get(name)
	if !ok {
		// The envelope itself was fine; an unknown tool is a domain error,
		// not a protocol one.
		return nil, &recruitee.ValidationError{Message: fmt.Sprintf("Unknown tool: %v", params["name"])}
	}

	args := map[string]interface{}{}
	if raw, present := params["arguments"]; present && raw != nil {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return nil, &invalidParamsError{msg: "Tool arguments must be an object"}
		}
		args = m
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"content": []interface{}{jsonContent(result)}}, nil
}

func jsonContent(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type": "application/json",
		"data": data,
	}
}
