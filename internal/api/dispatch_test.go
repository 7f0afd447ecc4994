package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitee-mcp/recruitee-mcp/internal/config"
	"github.com/recruitee-mcp/recruitee-mcp/internal/domain/recruitee"
	"github.com/recruitee-mcp/recruitee-mcp/internal/logging"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.CompanyID = "acme"
	cfg.APIToken = "token"
	cfg.BaseURL = upstream.URL
	cfg.Timeout = 5 * time.Second

	s, err := NewServer(recruitee.New(cfg, logging.Discard()), logging.Discard())
	require.NoError(t, err)
	return s
}

func okUpstream(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload)
	}
}

func dispatchRaw(t *testing.T, s *Server, payload string) JSONRPCResponse {
	t.Helper()
	return s.HandleRaw(context.Background(), []byte(payload))
}

func TestHandlePing(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)

	assert.Equal(t, "2.0", resp.JSONRPC)
	assert.Equal(t, float64(7), resp.ID)
	assert.Equal(t, "pong", resp.Result)
	assert.Nil(t, resp.Error)
}

func TestHandleEchoesStringID(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":"req-1","method":"ping"}`)

	assert.Equal(t, "req-1", resp.ID)
	assert.Equal(t, "pong", resp.Result)
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
	info, ok := result["serverInfo"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "recruitee-mcp", info["name"])
	assert.Equal(t, "0.1.0", info["version"])
}

func TestHandleParseError(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{not json`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ParseError, resp.Error.Code)
	assert.Nil(t, resp.ID)
	assert.Nil(t, resp.Result)
}

func TestHandleInvalidEnvelope(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	cases := []struct {
		name    string
		payload string
	}{
		{"array request", `[{"jsonrpc":"2.0","id":1,"method":"ping"}]`},
		{"scalar request", `"ping"`},
		{"missing jsonrpc", `{"id":1,"method":"ping"}`},
		{"wrong jsonrpc", `{"jsonrpc":"1.0","id":1,"method":"ping"}`},
		{"jsonrpc not a string", `{"jsonrpc":2.0,"id":1,"method":"ping"}`},
		{"missing id", `{"jsonrpc":"2.0","method":"ping"}`},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"ping"}`},
		{"missing method", `{"jsonrpc":"2.0","id":1}`},
		{"empty method", `{"jsonrpc":"2.0","id":1,"method":""}`},
		{"non-string method", `{"jsonrpc":"2.0","id":1,"method":42}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := dispatchRaw(t, s, tc.payload)
			require.NotNil(t, resp.Error)
			assert.Equal(t, InvalidRequest, resp.Error.Code)
			assert.Equal(t, "Invalid Request", resp.Error.Message)
			assert.Nil(t, resp.Result)
		})
	}
}

func TestHandleScalarParams(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":3,"method":"ping","params":[1,2]}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidParams, resp.Error.Code)
	assert.Equal(t, float64(3), resp.ID)
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":4,"method":"does_not_exist"}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, MethodNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "does_not_exist")
}

func TestListTools(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"list_tools"}`)

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	raw, err := json.Marshal(result["tools"])
	require.NoError(t, err)

	var tools []struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		InputSchema map[string]interface{} `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal(raw, &tools))

	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.Equal(t, "object", tools[i].InputSchema["type"], tool.Name)
	}
	assert.Equal(t, []string{
		"search_offers",
		"get_offer",
		"list_candidates",
		"search_candidates",
		"search_candidates_advanced",
		"get_candidate",
		"create_candidate",
		"list_pipelines",
	}, names)
}

func TestListResources(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"list_resources"}`)

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	raw, err := json.Marshal(result["resources"])
	require.NoError(t, err)

	var resources []struct {
		URI string `json:"uri"`
	}
	require.NoError(t, json.Unmarshal(raw, &resources))
	require.Len(t, resources, 2)
	assert.Equal(t, "recruitee://offers", resources[0].URI)
	assert.Equal(t, "recruitee://pipelines", resources[1].URI)
}

func TestReadResource(t *testing.T) {
	s := newTestServer(t, okUpstream(`{"offers":[{"id":1}]}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"read_resource","params":{"uri":"recruitee://offers"}}`)

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	contents := result["contents"].([]interface{})
	require.Len(t, contents, 1)
	item := contents[0].(map[string]interface{})
	assert.Equal(t, "application/json", item["type"])
	assert.NotNil(t, item["data"])
}

func TestReadResourceUnknownURI(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"read_resource","params":{"uri":"recruitee://nope"}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, RemoteError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "recruitee://nope")
}

func TestCallToolUnknownTool(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"nope"}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, RemoteError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "nope")
}

func TestCallToolArgumentsMustBeObject(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"list_pipelines","arguments":[1]}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidParams, resp.Error.Code)
}

func TestCallToolWrapsResultInContent(t *testing.T) {
	s := newTestServer(t, okUpstream(`{"pipelines":[{"id":9,"name":"Engineering"}]}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"list_pipelines"}}`)

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]interface{})
	require.Len(t, content, 1)
	item := content[0].(map[string]interface{})
	assert.Equal(t, "application/json", item["type"])
	data := item["data"].(map[string]interface{})
	assert.Contains(t, data, "pipelines")
}

func TestCallToolMissingRequiredID(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	for _, name := range []string{"get_offer", "get_candidate"} {
		t.Run(name, func(t *testing.T) {
			payload := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":%q}}`, name)
			resp := dispatchRaw(t, s, payload)
			require.NotNil(t, resp.Error)
			assert.Equal(t, RemoteError, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, "required")
		})
	}
}

func TestCreateCandidateEnumeratesMissingFields(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"create_candidate","arguments":{"last_name":"Kowalska"}}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, RemoteError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Missing required fields: first_name, email")
}

func TestSearchCandidatesRequiresQuery(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"search_candidates","arguments":{}}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, RemoteError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "query")
}

func TestSearchCandidatesAdvancedRejectsBadFilters(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"search_candidates_advanced","arguments":{"filters":{"field":"tags"}}}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, InvalidParams, resp.Error.Code)
}

func TestSearchCandidatesAdvancedCollectsPages(t *testing.T) {
	s := newTestServer(t, okUpstream(`{"hits":[{"id":1},{"id":2}]}`))

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"search_candidates_advanced","arguments":{"filters":[{"field":"tags","any":["go"]}],"limit":5,"max_records":2}}}`)

	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]interface{})
	data := content[0].(map[string]interface{})["data"].(map[string]interface{})
	assert.Equal(t, 2, data["count"])
	hits := data["hits"].([]interface{})
	assert.Len(t, hits, 2)
}

func TestAPIErrorMapsToStatusCode(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"list_pipelines"}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, http.StatusNotFound, resp.Error.Code)
}

func TestConnectionErrorMapsToRemoteConnection(t *testing.T) {
	cfg := config.Default()
	cfg.CompanyID = "acme"
	cfg.BaseURL = "http://127.0.0.1:1"
	cfg.Timeout = time.Second

	s, err := NewServer(recruitee.New(cfg, logging.Discard()), logging.Discard())
	require.NoError(t, err)

	resp := dispatchRaw(t, s, `{"jsonrpc":"2.0","id":1,"method":"call_tool","params":{"name":"list_pipelines"}}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, RemoteConnectionError, resp.Error.Code)
}

func TestResponseHasExactlyOneOfResultOrError(t *testing.T) {
	s := newTestServer(t, okUpstream(`{}`))

	payloads := []string{
		`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":2,"method":"nope"}`,
		`{"jsonrpc":"2.0","id":null,"method":"ping"}`,
		`garbage`,
	}
	for _, payload := range payloads {
		resp := dispatchRaw(t, s, payload)
		if resp.Error != nil {
			assert.Nil(t, resp.Result, payload)
		} else {
			assert.NotNil(t, resp.Result, payload)
		}
		assert.Equal(t, "2.0", resp.JSONRPC, payload)
	}
}
