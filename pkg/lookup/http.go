package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"srs-hq/rulediff/pkg/telemetry/tracing"
)

// maxResponseBytes bounds the body read from the lookup endpoint.
const maxResponseBytes = 1 << 20

// HTTPClient looks rules up through a rulediff server's POST /rule endpoint.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// ruleRequest is the /rule request body.
type ruleRequest struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName,omitempty"`
	DBCreds     Credentials `json:"dbCreds"`
}

// NewHTTPClient creates a client for the server at endpoint, for example
// "http://localhost:5000". A zero timeout leaves the pooled client's default.
func NewHTTPClient(endpoint string, timeout time.Duration, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}
	client := cleanhttp.DefaultPooledClient()
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
		logger:   logger.With("component", "lookup.http"),
	}
}

// Lookup implements Lookuper.
func (c *HTTPClient) Lookup(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(ruleRequest{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		DBCreds:     req.Credentials,
	})
	if err != nil {
		return Result{}, NewLookupError(req.Name, "http", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/rule", bytes.NewReader(body))
	if err != nil {
		return Result{}, NewLookupError(req.Name, "http", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, httpReq.Header)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Result{}, NewLookupError(req.Name, "http", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Result{}, NewLookupError(req.Name, "http", err)
	}

	c.logger.Debug("rule lookup completed",
		"rule", req.Name,
		"status_code", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		lerr := NewLookupError(req.Name, "http", fmt.Errorf("%s", responseMessage(data)))
		lerr.StatusCode = resp.StatusCode
		return Result{}, lerr
	}

	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return Result{}, NewLookupError(req.Name, "http", fmt.Errorf("decode response: %w", err))
	}
	if m == nil {
		return Result{}, NewLookupError(req.Name, "http", fmt.Errorf("response is not a JSON object"))
	}
	return FromMap(m), nil
}

// responseMessage extracts the most useful text from an error body.
func responseMessage(data []byte) string {
	var body struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Status != "" {
		if body.Error != "" {
			return body.Status + ": " + body.Error
		}
		return body.Status
	}
	msg := strings.TrimSpace(string(data))
	if msg == "" {
		return "empty response"
	}
	return msg
}
