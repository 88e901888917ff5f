package command_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvgate/kvgate"
	"github.com/kvgate/kvgate/backend"
	"github.com/kvgate/kvgate/command"
	"github.com/kvgate/kvgate/gateway"
)

func newTestCommands(t *testing.T) (*command.Commands, *command.Dispatcher) {
	t.Helper()
	gw := gateway.New(gateway.Config{
		ListenAddr: "127.0.0.1:0",
		Backend:    backend.Config{Addr: "127.0.0.1:1", DialTimeout: 1},
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = gw.Close(ctx)
	})

	cmds := command.New(gw, nil)
	disp := command.NewDispatcher()
	require.NoError(t, cmds.RegisterAll(disp))
	return cmds, disp
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, disp := newTestCommands(t)

	_, err := disp.Dispatch(context.Background(), []string{"HTTP.NOPE"})
	require.Error(t, err)
	assert.ErrorIs(t, err, kvgate.ErrUnknownCommand)
}

func TestDispatcher_DuplicateRegistration(t *testing.T) {
	disp := command.NewDispatcher()
	handler := func(context.Context, []string) (string, error) { return "", nil }

	require.NoError(t, disp.Register("HTTP.GET", handler))
	assert.Error(t, disp.Register("http.get", handler))
}

func TestDispatcher_Names(t *testing.T) {
	_, disp := newTestCommands(t)

	names := disp.Names()
	assert.Len(t, names, 7)
	assert.Contains(t, names, "HTTP.GET")
	assert.Contains(t, names, "HTTP.SERVER.STATUS")
}

func TestDispatcher_CaseInsensitive(t *testing.T) {
	_, disp := newTestCommands(t)

	reply, err := disp.Dispatch(context.Background(), []string{"http.server.status"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP server status: stopped", reply)
}

func TestServerCommands_Lifecycle(t *testing.T) {
	_, disp := newTestCommands(t)
	ctx := context.Background()

	reply, err := disp.Dispatch(ctx, []string{"HTTP.SERVER.STATUS"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP server status: stopped", reply)

	reply, err = disp.Dispatch(ctx, []string{"HTTP.SERVER.START"})
	require.NoError(t, err)
	assert.Contains(t, reply, "HTTP server started on ")

	// Second start is a success, not an address-in-use failure.
	reply2, err := disp.Dispatch(ctx, []string{"HTTP.SERVER.START"})
	require.NoError(t, err)
	assert.Equal(t, reply, reply2)

	reply, err = disp.Dispatch(ctx, []string{"HTTP.SERVER.STATUS"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP server status: running", reply)

	reply, err = disp.Dispatch(ctx, []string{"HTTP.SERVER.STOP"})
	require.NoError(t, err)
	assert.Equal(t, "HTTP server stopped", reply)
}

func TestServerCommands_Arity(t *testing.T) {
	_, disp := newTestCommands(t)

	_, err := disp.Dispatch(context.Background(), []string{"HTTP.SERVER.START", "extra"})
	assert.ErrorIs(t, err, kvgate.ErrWrongArity)
}

func TestHTTPGet_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello from peer"))
	}))
	defer srv.Close()

	_, disp := newTestCommands(t)

	reply, err := disp.Dispatch(context.Background(), []string{"HTTP.GET", srv.URL})
	require.NoError(t, err)

	var out kvgate.OutboundResponse
	require.NoError(t, json.Unmarshal([]byte(reply), &out))
	assert.Equal(t, http.StatusOK, out.Status)
	assert.Equal(t, "hello from peer", out.Body)
	assert.Equal(t, "yes", out.Headers["X-Test"])
}

func TestHTTPPost_BodyAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "a,b,c", string(body))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, disp := newTestCommands(t)

	reply, err := disp.Dispatch(context.Background(),
		[]string{"HTTP.POST", srv.URL, "a,b,c", "text/csv"})
	require.NoError(t, err)

	var out kvgate.OutboundResponse
	require.NoError(t, json.Unmarshal([]byte(reply), &out))
	assert.Equal(t, http.StatusCreated, out.Status)
}

func TestHTTPPost_DefaultContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, disp := newTestCommands(t)

	_, err := disp.Dispatch(context.Background(),
		[]string{"HTTP.POST", srv.URL, `{"x":1}`})
	require.NoError(t, err)
}

func TestHTTPPut_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, disp := newTestCommands(t)

	reply, err := disp.Dispatch(context.Background(), []string{"HTTP.PUT", srv.URL, "payload"})
	require.NoError(t, err)

	var out kvgate.OutboundResponse
	require.NoError(t, json.Unmarshal([]byte(reply), &out))
	assert.Equal(t, http.StatusNoContent, out.Status)
}

func TestHTTPDelete_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, disp := newTestCommands(t)

	_, err := disp.Dispatch(context.Background(), []string{"HTTP.DELETE", srv.URL})
	require.NoError(t, err)
}

func TestHTTPCommands_Arity(t *testing.T) {
	_, disp := newTestCommands(t)
	ctx := context.Background()

	tests := []struct {
		name string
		argv []string
	}{
		{"get no url", []string{"HTTP.GET"}},
		{"get extra arg", []string{"HTTP.GET", "http://example.com", "extra"}},
		{"delete no url", []string{"HTTP.DELETE"}},
		{"post no url", []string{"HTTP.POST"}},
		{"post five args", []string{"HTTP.POST", "http://example.com", "body", "text/plain", "extra"}},
		{"put five args", []string{"HTTP.PUT", "http://example.com", "body", "text/plain", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := disp.Dispatch(ctx, tt.argv)
			assert.ErrorIs(t, err, kvgate.ErrWrongArity)
		})
	}
}

func TestHTTPCommands_InvalidURL(t *testing.T) {
	_, disp := newTestCommands(t)
	ctx := context.Background()

	for _, raw := range []string{"not a url", "example.com/no-scheme", "http://"} {
		_, err := disp.Dispatch(ctx, []string{"HTTP.GET", raw})
		assert.ErrorIs(t, err, kvgate.ErrInvalidURL, "url %q", raw)
	}
}

func TestHTTPGet_TransportError(t *testing.T) {
	_, disp := newTestCommands(t)

	// Valid URL, nothing listening.
	_, err := disp.Dispatch(context.Background(), []string{"HTTP.GET", "http://127.0.0.1:1/"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvgate.ErrInvalidURL)
	assert.Contains(t, err.Error(), "HTTP request failed")
}
