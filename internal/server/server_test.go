package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
)

func newTestServer(t *testing.T, provider schema.Provider) *httptest.Server {
	t.Helper()
	srv := New(complete.NewEngine(provider, nil, nil), provider, nil)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func testSchema() *schema.Schema {
	s := schema.NewSchema()
	s.AddTable("A").AddColumns("col1", "col2", "col3")
	s.AddTable("B").AddColumns("col4")
	return s
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/complete", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestComplete(t *testing.T) {
	ts := newTestServer(t, testSchema())

	resp, out := post(t, ts, `{"text": "SELECT * FROM A WHERE ", "cursor": 22}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	proposals, ok := out["proposals"].([]any)
	require.True(t, ok, "proposals missing: %v", out)
	require.Len(t, proposals, 3)
	first := proposals[0].(map[string]any)
	assert.Equal(t, "col1", first["replacementText"])
	assert.Equal(t, "column", first["kind"])

	ctx := out["context"].(map[string]any)
	assert.Equal(t, "where", ctx["clause"])
}

func TestCompleteErrors(t *testing.T) {
	ts := newTestServer(t, testSchema())

	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{"text":`, "INVALID_REQUEST"},
		{"unknown field", `{"query": "SELECT"}`, "INVALID_REQUEST"},
		{"cursor past end", `{"text": "SELECT", "cursor": 10}`, "INVALID_ARGUMENT"},
		{"negative cursor", `{"text": "SELECT", "cursor": -1}`, "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, ts, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, out["code"])
		})
	}
}

func TestTables(t *testing.T) {
	ts := newTestServer(t, testSchema())

	resp, err := http.Get(ts.URL + "/v1/tables")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out TablesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Tables, 2)
	assert.Equal(t, "A", out.Tables[0].Name)
	assert.Equal(t, "B", out.Tables[1].Name)
}

func TestTablesWithoutProvider(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/v1/tables")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out TablesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotNil(t, out.Tables)
	assert.Empty(t, out.Tables)
}

type brokenProvider struct{}

func (brokenProvider) ListTables(context.Context) ([]schema.Object, error) {
	return nil, errors.New("database is locked")
}

func (brokenProvider) ListColumns(context.Context, string) ([]schema.Object, error) {
	return nil, errors.New("database is locked")
}

func TestTablesProviderError(t *testing.T) {
	ts := newTestServer(t, brokenProvider{})

	resp, err := http.Get(ts.URL + "/v1/tables")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestListenAndServeShutdown(t *testing.T) {
	srv := New(complete.NewEngine(nil, nil, nil), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}

func TestHover(t *testing.T) {
	ts := newTestServer(t, testSchema())

	resp, err := http.Post(ts.URL+"/v1/hover", "application/json",
		strings.NewReader(`{"text": "SELECT a.col2 FROM A a", "position": 11}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out HoverResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.Hover)
	assert.Equal(t, "col2", out.Hover.Name)
	assert.Equal(t, "A", out.Hover.Table)
}

func TestHoverNothing(t *testing.T) {
	ts := newTestServer(t, testSchema())

	resp, err := http.Post(ts.URL+"/v1/hover", "application/json",
		strings.NewReader(`{"text": "SELECT  FROM A", "position": 7}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out HoverResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Nil(t, out.Hover)
}
