package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/internal/testutil"
)

func newTestServer(t *testing.T, store core.RemoteStore) (*httptest.Server, Handler) {
	t.Helper()

	handler := NewHandler(store)

	e := echo.New()
	api := e.Group("/api/v1")
	api.GET("/docs/*", handler.Get)
	api.PUT("/docs/*", handler.Set)
	api.PATCH("/docs/*", handler.Patch)
	api.DELETE("/docs/*", handler.Delete)
	api.GET("/collections/*", handler.List)
	api.GET("/realtime", handler.Realtime)

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return server, handler
}

func doRequest(t *testing.T, method, url, body string) (int, core.ResponseBase[json.RawMessage]) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var response core.ResponseBase[json.RawMessage]
	err = json.NewDecoder(resp.Body).Decode(&response)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, response
}

func TestHandlerDocuments(t *testing.T) {
	server, _ := newTestServer(t, NewMemoryStore())
	docs := server.URL + "/api/v1/docs"

	status, _ := doRequest(t, http.MethodPut, docs+"/campaigns/c1", `{"name":"Iron Vale","supply":5}`)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, http.MethodPatch, docs+"/campaigns/c1", `{"set":{"supply":2}}`)
	assert.Equal(t, http.StatusOK, status)

	status, response := doRequest(t, http.MethodGet, docs+"/campaigns/c1", "")
	if assert.Equal(t, http.StatusOK, status) {
		var doc core.Document
		assert.NoError(t, json.Unmarshal(response.Content, &doc))
		assert.Equal(t, "/campaigns/c1", doc.Path)
		assert.JSONEq(t, `{"name":"Iron Vale","supply":2}`, string(doc.Data))
	}

	status, response = doRequest(t, http.MethodGet, docs+"/campaigns/c2", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", response.Status)

	status, _ = doRequest(t, http.MethodPut, docs+"/campaigns/c1", `"not an object"`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doRequest(t, http.MethodPatch, docs+"/campaigns/c2", `{"set":{"supply":2}}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, response = doRequest(t, http.MethodGet, server.URL+"/api/v1/collections/campaigns", "")
	if assert.Equal(t, http.StatusOK, status) {
		var list []core.Document
		assert.NoError(t, json.Unmarshal(response.Content, &list))
		assert.Len(t, list, 1)
	}

	status, _ = doRequest(t, http.MethodDelete, docs+"/campaigns/c1", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, http.MethodGet, docs+"/campaigns/c1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandlerGetTrace(t *testing.T) {
	spanChecker := testutil.SetupMockTraceProvider()

	store := NewMemoryStore()
	assert.NoError(t, store.Set(context.Background(), "/characters/ch1", json.RawMessage(`{"name":"Kira"}`)))

	c, _, rec, traceID := testutil.CreateHttpRequest()
	c.SetParamNames("*")
	c.SetParamValues("characters/ch1")

	handler := NewHandler(store)
	err := handler.Get(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	found := false
	for _, span := range spanChecker.GetSpans() {
		if span.Name == "Store.Handler.Get" && span.SpanContext.TraceID().String() == traceID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(core.NewErrorNotFound()))
	assert.Equal(t, http.StatusForbidden, StatusCode(core.NewErrorPermissionDenied()))
	assert.Equal(t, http.StatusBadRequest, StatusCode(core.NewErrorValidation("bad")))
	assert.Equal(t, http.StatusServiceUnavailable, StatusCode(core.NewErrorNetworkFailure()))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(context.DeadlineExceeded))
}

func readEvent(t *testing.T, ws *websocket.Conn) core.RealtimeEvent {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event core.RealtimeEvent
	err := ws.ReadJSON(&event)
	if err != nil {
		t.Fatal(err)
	}
	return event
}

func TestHandlerRealtime(t *testing.T) {
	store := NewMemoryStore()
	server, handler := newTestServer(t, store)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/realtime"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	err = ws.WriteJSON(core.RealtimeRequest{Type: core.RealtimeListen, Path: "characters/ch1"})
	assert.NoError(t, err)

	event := readEvent(t, ws)
	assert.Equal(t, "/characters/ch1", event.Path)
	if assert.NotNil(t, event.Snapshot) {
		assert.False(t, event.Snapshot.Exists)
	}

	assert.NoError(t, store.Set(context.Background(), "/characters/ch1", json.RawMessage(`{"name":"Kira"}`)))

	event = readEvent(t, ws)
	if assert.NotNil(t, event.Snapshot) && assert.True(t, event.Snapshot.Exists) {
		assert.JSONEq(t, `{"name":"Kira"}`, string(event.Snapshot.Documents[0].Data))
	}
	assert.Equal(t, int64(1), handler.GetMetrics()["realtime_listeners"])

	err = ws.WriteJSON(core.RealtimeRequest{Type: core.RealtimeListen, Path: "/characters//x"})
	assert.NoError(t, err)

	event = readEvent(t, ws)
	assert.Nil(t, event.Snapshot)
	assert.Equal(t, http.StatusBadRequest, event.Code)
	assert.NotEmpty(t, event.Error)

	err = ws.WriteJSON(core.RealtimeRequest{Type: core.RealtimeUnlisten, Path: "/characters/ch1"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return handler.GetMetrics()["realtime_listeners"] == 0
	}, 2*time.Second, 10*time.Millisecond)
}
