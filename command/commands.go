package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/kvgate/kvgate"
	"github.com/kvgate/kvgate/gateway"
)

const defaultContentType = "application/json"

// Commands binds the command entry points to a gateway and an outbound
// HTTP client.
type Commands struct {
	gw     *gateway.Gateway
	client *http.Client
}

// New creates the command set. A nil client falls back to a default
// http.Client with no timeout: outbound calls block until the peer
// responds, matching the synchronous command contract.
func New(gw *gateway.Gateway, client *http.Client) *Commands {
	if client == nil {
		client = &http.Client{}
	}
	return &Commands{gw: gw, client: client}
}

// RegisterAll registers every command with the host registry.
func (c *Commands) RegisterAll(reg Registry) error {
	for name, handler := range map[string]Handler{
		"HTTP.GET":           c.httpGet,
		"HTTP.POST":          c.httpPost,
		"HTTP.PUT":           c.httpPut,
		"HTTP.DELETE":        c.httpDelete,
		"HTTP.SERVER.START":  c.serverStart,
		"HTTP.SERVER.STOP":   c.serverStop,
		"HTTP.SERVER.STATUS": c.serverStatus,
	} {
		if err := reg.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// AutoStart starts the gateway at host load time. A failure is logged and
// swallowed: a gateway that cannot bind must not prevent the host from
// loading the module.
func (c *Commands) AutoStart() {
	if err := c.gw.Start(); err != nil {
		slog.Warn("failed to start HTTP server", "err", err)
	}
}

func (c *Commands) serverStart(_ context.Context, argv []string) (string, error) {
	if len(argv) != 1 {
		return "", arityError(argv)
	}
	if err := c.gw.Start(); err != nil {
		return "", fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return fmt.Sprintf("HTTP server started on %s", c.gw.Addr()), nil
}

func (c *Commands) serverStop(ctx context.Context, argv []string) (string, error) {
	if len(argv) != 1 {
		return "", arityError(argv)
	}
	if err := c.gw.Stop(ctx); err != nil {
		return "", fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return "HTTP server stopped", nil
}

func (c *Commands) serverStatus(_ context.Context, argv []string) (string, error) {
	if len(argv) != 1 {
		return "", arityError(argv)
	}
	return "HTTP server status: " + c.gw.Status(), nil
}

func (c *Commands) httpGet(ctx context.Context, argv []string) (string, error) {
	if len(argv) != 2 {
		return "", arityError(argv)
	}
	target, err := parseTarget(argv[1])
	if err != nil {
		return "", err
	}
	return c.do(ctx, http.MethodGet, target, "", "")
}

func (c *Commands) httpDelete(ctx context.Context, argv []string) (string, error) {
	if len(argv) != 2 {
		return "", arityError(argv)
	}
	target, err := parseTarget(argv[1])
	if err != nil {
		return "", err
	}
	return c.do(ctx, http.MethodDelete, target, "", "")
}

func (c *Commands) httpPost(ctx context.Context, argv []string) (string, error) {
	return c.sendWithBody(ctx, http.MethodPost, argv)
}

func (c *Commands) httpPut(ctx context.Context, argv []string) (string, error) {
	return c.sendWithBody(ctx, http.MethodPut, argv)
}

// sendWithBody handles the shared POST/PUT shape: url [body [content-type]].
func (c *Commands) sendWithBody(ctx context.Context, method string, argv []string) (string, error) {
	if len(argv) < 2 || len(argv) > 4 {
		return "", arityError(argv)
	}
	target, err := parseTarget(argv[1])
	if err != nil {
		return "", err
	}

	body := ""
	if len(argv) > 2 {
		body = argv[2]
	}
	contentType := defaultContentType
	if len(argv) > 3 {
		contentType = argv[3]
	}

	return c.do(ctx, method, target, body, contentType)
}

// do issues the outbound call and serializes the reply. The call blocks
// until the peer responds; the caller owns any timeout via ctx.
func (c *Commands) do(ctx context.Context, method, target, body, contentType string) (string, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	// Last value wins on repeated header names.
	headers := make(map[string]string, len(resp.Header))
	for name, values := range resp.Header {
		if len(values) > 0 {
			headers[name] = values[len(values)-1]
		}
	}

	out := kvgate.OutboundResponse{
		Status:  resp.StatusCode,
		Headers: headers,
		Body:    string(respBody),
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("serialize response: %w", err)
	}
	return string(encoded), nil
}

// parseTarget validates that the argument is an absolute URL. No call is
// attempted for an invalid target.
func parseTarget(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q: %w", raw, kvgate.ErrInvalidURL)
	}
	return u.String(), nil
}

func arityError(argv []string) error {
	name := "command"
	if len(argv) > 0 {
		name = strings.ToUpper(argv[0])
	}
	return fmt.Errorf("%s: %w", name, kvgate.ErrWrongArity)
}
