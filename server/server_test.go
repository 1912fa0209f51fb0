package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/commands"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/dashboard"
	"github.com/inkdash/inkdash/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires a dashboard with a simulated display behind a
// Server and returns its httptest frontend.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Load(dir + "/config.ini")
	require.NoError(t, err)
	cfg.Display.Rotation = 0

	store, err := cache.New(dir + "/cache")
	require.NoError(t, err)

	d, err := dashboard.New(cfg, nil, display.NewSim(""), store)
	require.NoError(t, err)
	commands.SetDashboard(d)

	s := NewServer("localhost:0", false)
	ts := httptest.NewServer(s.handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func rpc(t *testing.T, url string, body string) JSONRPCResponse {
	t.Helper()
	resp, err := http.Post(url+"/rpc", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out JSONRPCResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp JSONRPCResponse) int {
	t.Helper()
	errObj, ok := resp.Error.(map[string]interface{})
	require.True(t, ok, "expected an error object, got %+v", resp)
	return int(errObj["code"].(float64))
}

func TestBannerEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.Equal(t, "ok", data["status"])
}

func TestRPCRejectsGet(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/rpc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRPCInvalidPayloads(t *testing.T) {
	_, ts := newTestServer(t)

	assert.Equal(t, ErrCodeParseError, errorCode(t, rpc(t, ts.URL, `{not json`)))
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, rpc(t, ts.URL, `{"jsonrpc":"1.0","method":"screens","id":1}`)))
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"screens"}`)))
	assert.Equal(t, ErrCodeInvalidRequest, errorCode(t, rpc(t, ts.URL, `{"jsonrpc":"2.0","id":1}`)))
	assert.Equal(t, ErrCodeMethodNotFound, errorCode(t, rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"bogus","id":1}`)))
}

func TestRPCScreens(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"screens","id":1}`)
	require.Nil(t, resp.Error)

	screens, ok := resp.Result.([]interface{})
	require.True(t, ok)
	assert.Len(t, screens, 4)
}

func TestRPCIoTapEdgeNavigates(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"io_tap","params":{"x":245,"y":60},"id":1}`)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "markets", result["screen"])
}

func TestRPCIoSwipeValidation(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"io_swipe","params":{"direction":"sideways"},"id":1}`)
	assert.Equal(t, ErrCodeServerError, errorCode(t, resp))

	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"io_swipe","params":{"direction":"left"},"id":2}`)
	require.Nil(t, resp.Error)
}

func TestRPCScreenGoto(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"screen_goto","params":{"name":"news"},"id":1}`)
	require.Nil(t, resp.Error)

	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"screen_goto","params":{"name":"bogus"},"id":2}`)
	assert.Equal(t, ErrCodeServerError, errorCode(t, resp))
}

func TestRPCConfigGetSet(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"config_get","params":{"key":"weather.units"},"id":1}`)
	require.Nil(t, resp.Error)
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "fahrenheit", result["weather.units"])

	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"config_set","params":{"key":"weather.units","value":"celsius"},"id":2}`)
	require.Nil(t, resp.Error)

	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"config_get","params":{"key":"weather.units"},"id":3}`)
	result = resp.Result.(map[string]interface{})
	assert.Equal(t, "celsius", result["weather.units"])

	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"config_set","params":{"key":"bogus.key","value":"x"},"id":4}`)
	assert.Equal(t, ErrCodeServerError, errorCode(t, resp))
}

func TestRPCFrame(t *testing.T) {
	_, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"frame","id":1}`)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "png", result["format"])
	data, _ := result["data"].(string)
	assert.True(t, strings.HasPrefix(data, "data:image/png;base64,"))
}

func TestRPCShutdown(t *testing.T) {
	s, ts := newTestServer(t)

	resp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"server.shutdown","id":1}`)
	require.Nil(t, resp.Error)

	select {
	case <-s.ShutdownRequested():
	case <-time.After(time.Second):
		t.Fatal("shutdown was not requested")
	}

	// a second shutdown request must not panic on the closed channel
	resp = rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"server.shutdown","id":2}`)
	require.Nil(t, resp.Error)
}

func TestEventsWebSocket(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// give the server a moment to register the subscription
	time.Sleep(100 * time.Millisecond)

	rpcResp := rpc(t, ts.URL, `{"jsonrpc":"2.0","method":"io_swipe","params":{"direction":"left"},"id":1}`)
	require.Nil(t, rpcResp.Error)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev dashboard.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, dashboard.EventGesture, ev.Type)
	assert.NotEmpty(t, ev.ID)
}
