package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/recruitee-mcp/recruitee-mcp/internal/logging"
)

// Gateway serves the JSON-RPC endpoint over HTTP along with a health check
// and a small discovery document.
type Gateway struct {
	server *Server
	mux    *http.ServeMux
	logger *logging.Logger
}

// NewGateway wires the HTTP routes onto the given dispatcher.
func NewGateway(server *Server, logger *logging.Logger) *Gateway {
	if logger == nil {
		logger = logging.Discard()
	}
	g := &Gateway{
		server: server,
		mux:    http.NewServeMux(),
		logger: logger,
	}
	g.routes()
	return g
}

func (g *Gateway) routes() {
	g.mux.HandleFunc("POST /{$}", g.handleRPC)
	g.mux.HandleFunc("POST /mcp", g.handleRPC)
	g.mux.HandleFunc("GET /{$}", g.handleDiscovery)
	g.mux.HandleFunc("GET /mcp", g.handleDiscovery)
	g.mux.HandleFunc("GET /health", g.handleHealth)
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Global CORS headers for MCP clients
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	g.mux.ServeHTTP(w, r)
}

// handleRPC reads exactly Content-Length bytes, dispatches the payload and
// always answers 200 with a JSON-RPC response body. Protocol failures live
// inside the envelope, not in the HTTP status.
func (g *Gateway) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Length") == "" {
		http.Error(w, "Content-Length required", http.StatusLengthRequired)
		return
	}
	if _, err := strconv.Atoi(r.Header.Get("Content-Length")); err != nil {
		http.Error(w, "Invalid Content-Length", http.StatusBadRequest)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		g.logger.Error("failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	resp := g.server.HandleRaw(r.Context(), payload)

	body, err := json.Marshal(resp)
	if err != nil {
		// Result was not serializable. Fall back to a bare internal error.
		g.logger.Error("failed to marshal response", "error", err)
		body, _ = json.Marshal(NewJSONRPCErrorResponse(resp.ID, InternalError, "Internal error"))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (g *Gateway) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"protocol": "jsonrpc-2.0",
		"serverInfo": map[string]string{
			"name":    serverName,
			"version": serverVersion,
		},
		"endpoints": map[string]string{
			"rpc":    "/mcp",
			"health": "/health",
		},
	})
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Addr formats a host/port pair for http.Server.
func Addr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
