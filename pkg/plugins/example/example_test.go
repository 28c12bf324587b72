package example

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkg-node/dkg-plugins/app/core"
	"github.com/dkg-node/dkg-plugins/pkg/dkg"
	"github.com/dkg-node/dkg-plugins/pkg/utils"
)

type noopClient struct{}

func (noopClient) Asset() dkg.AssetService { return nil }
func (noopClient) Graph() dkg.GraphService { return nil }

func setupPlugin(t *testing.T) (*core.Core, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c := core.MustSetupCore(core.LoadBaseConfigFromENV(), core.WithDKGClient(noopClient{}))
	c.InstallPlugins(New())
	c.Registry().Mount(c.HttpEngine())
	return c, c.HttpEngine()
}

func call(engine *gin.Engine, method, target, body string) (int, map[string]any) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var res map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return w.Code, res
}

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	ct, st := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	session, err := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil).Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestGreeting(t *testing.T) {
	for _, name := range []string{"Alice", "bob", "Łukasz"} {
		plain := Greeting(name, false)
		assert.Contains(t, plain, name)
		assert.Equal(t, "Hello, "+name+"! Welcome to the DKG Node.", plain)

		loud := Greeting(name, true)
		assert.Equal(t, strings.ToUpper(plain)+ENTHUSIASTIC_SUFFIX, loud)
	}
}

func TestGreetOnBothSurfaces(t *testing.T) {
	c, engine := setupPlugin(t)

	code, res := call(engine, http.MethodGet, "/greeting/Alice?enthusiastic=true", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, "HELLO, ALICE! WELCOME TO THE DKG NODE. 🎉", res["greeting"])
	_, err := time.Parse(utils.ISO8601, res["timestamp"].(string))
	assert.NoError(t, err)

	session := connect(t, c.Registry().Server())
	text, isErr := callTool(t, session, "generate_greeting", map[string]any{"name": "Alice", "enthusiastic": true})
	assert.False(t, isErr)
	assert.Equal(t, res["greeting"], text)

	text, _ = callTool(t, session, "generate_greeting", map[string]any{"name": "Alice"})
	assert.Equal(t, "Hello, Alice! Welcome to the DKG Node.", text)
}

func TestEchoRoundTrip(t *testing.T) {
	l := NewUtilityLogic(context.Background(), nil, Config{})
	for _, s := range []string{"abc", "a", "héllo wörld", "日本語テキスト", "👍🏽ok"} {
		res := l.Echo(s)
		assert.Equal(t, s, utils.ReverseString(res.Reversed))
		assert.Equal(t, len([]rune(s)), res.Length)
		assert.Equal(t, strings.ToUpper(s), res.Uppercase)
	}
}

func TestEchoREST(t *testing.T) {
	_, engine := setupPlugin(t)

	code, res := call(engine, http.MethodPost, "/echo", `{"message":"abc"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, res["success"])

	data := res["data"].(map[string]any)
	assert.Equal(t, "abc", data["echo"])
	assert.Equal(t, float64(3), data["length"])
	assert.Equal(t, "cba", data["reversed"])
	assert.Equal(t, "ABC", data["uppercase"])
	assert.NotEmpty(t, data["timestamp"])

	code, res = call(engine, http.MethodPost, "/echo", `{"message":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, res["success"])
	assert.Equal(t, "message is required", res["error"])

	code, _ = call(engine, http.MethodPost, "/echo", `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEchoTool(t *testing.T) {
	c, _ := setupPlugin(t)
	session := connect(t, c.Registry().Server())

	text, isErr := callTool(t, session, "echo_message", map[string]any{"message": "abc"})
	assert.False(t, isErr)
	assert.Equal(t, "Echo: abc\nLength: 3 characters\nReversed: cba\nUppercase: ABC", text)

	text, isErr = callTool(t, session, "echo_message", map[string]any{"message": ""})
	assert.True(t, isErr)
	assert.Contains(t, text, "message is required")
}

func TestStats(t *testing.T) {
	c, engine := setupPlugin(t)

	code, res := call(engine, http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, code)
	data := res["data"].(map[string]any)
	assert.Equal(t, STATUS_RUNNING, data["status"])
	assert.Equal(t, DEFAULT_VERSION, data["pluginVersion"])
	assert.Equal(t, DEFAULT_PLUGIN_ID, data["plugin"])
	assert.GreaterOrEqual(t, data["uptime"].(float64), 0.0)

	session := connect(t, c.Registry().Server())
	text, isErr := callTool(t, session, "get_node_stats", map[string]any{})
	assert.False(t, isErr)
	assert.Contains(t, text, "Node Status: running")
	assert.Contains(t, text, "Plugin: example-plugin (v1.0.0)")
}

func TestHealth(t *testing.T) {
	c, engine := setupPlugin(t)

	code, res := call(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, res["success"])
	assert.Equal(t, STATUS_HEALTHY, res["status"])
	assert.Equal(t, DEFAULT_PLUGIN_ID, res["plugin"])

	// health is REST only
	assert.NotContains(t, c.Registry().Tools(), "health")
	assert.Equal(t, []string{"generate_greeting", "get_node_stats", "echo_message"}, c.Registry().Tools())
}
