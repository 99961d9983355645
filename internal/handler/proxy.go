package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"

	"github.com/vitasports/backend/internal/middleware"
	"github.com/vitasports/backend/internal/server"
)

const maxProxyResponse = 4 << 20

// ProxyHandler forwards /api/proxy/:functionName to the function backend
// and answers with canned data whenever the backend cannot.
type ProxyHandler struct {
	Handler
	backendURL string
	client     *http.Client
	now        func() time.Time
}

func NewProxyHandler(s *server.Server) *ProxyHandler {
	return &ProxyHandler{
		Handler:    NewHandler(s),
		backendURL: strings.TrimRight(s.Config.Proxy.BackendURL, "/"),
		client: &http.Client{
			Timeout:   s.Config.Proxy.Timeout,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
		now: time.Now,
	}
}

func setProxyCORS(c echo.Context) {
	header := c.Response().Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func (h *ProxyHandler) Proxy(c echo.Context) error {
	setProxyCORS(c)

	if c.Request().Method == http.MethodOptions {
		return c.NoContent(http.StatusOK)
	}

	name := c.Param("functionName")
	logger := middleware.GetLogger(c).With().
		Str("operation", "proxy").
		Str("function", name).
		Logger()

	body, err := h.forward(c, name)
	if err != nil {
		logger.Warn().Err(err).Msg("proxy call failed, serving mock data")
		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.AddAttribute("proxy.fallback", true)
		}
		return c.JSON(http.StatusOK, h.mockData(name))
	}

	return c.JSONBlob(http.StatusOK, body)
}

// Throttled answers a rate limited proxy call with mock data, so the proxy
// keeps responding 200.
func (h *ProxyHandler) Throttled(c echo.Context) error {
	setProxyCORS(c)
	if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
		txn.AddAttribute("proxy.throttled", true)
	}
	return c.JSON(http.StatusOK, h.mockData(c.Param("functionName")))
}

func (h *ProxyHandler) forward(c echo.Context, name string) (json.RawMessage, error) {
	if h.backendURL == "" {
		return nil, errors.New("proxy backend not configured")
	}

	endpoint := fmt.Sprintf("%s/functions/%s", h.backendURL, url.PathEscape(name))
	ctx := c.Request().Context()

	var (
		req *http.Request
		err error
	)
	if c.Request().Method == http.MethodGet {
		if q := c.Request().URL.RawQuery; q != "" {
			endpoint += "?" + q
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	} else {
		var payload []byte
		payload, err = readBody(c.Request())
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	}
	if err != nil {
		return nil, errors.Wrap(err, "build proxy request")
	}
	req.Header.Set("Content-Type", "application/json")
	if auth := c.Request().Header.Get(echo.HeaderAuthorization); auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}

	return h.do(req)
}

func (h *ProxyHandler) do(req *http.Request) (json.RawMessage, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call backend")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxProxyResponse))
	if err != nil {
		return nil, errors.Wrap(err, "read backend response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("backend returned status %d", resp.StatusCode)
	}
	if !json.Valid(raw) {
		return nil, errors.New("backend returned invalid JSON")
	}
	return raw, nil
}

// readBody returns the request body, or {} when it is empty.
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxProxyResponse))
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}
	return raw, nil
}
