package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"santaos/internal/domain"
	"santaos/internal/observability"
)

// DefaultTimeout bounds every request when HTTP.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response we are willing to buffer.
const maxBody = 4 << 20

// maxMessage caps a plain-text error message, in bytes.
const maxMessage = 512

// HTTP is the shared transport for every resource client.
type HTTP struct {
	Base    string
	HTTP    *http.Client
	Timeout time.Duration
	// Token returns the bearer token of the held user, or "".
	Token  func() string
	Logger observability.Logger
}

// NewHTTP returns a transport rooted at base. A nil client means http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{
		Base:    strings.TrimRight(base, "/"),
		HTTP:    hc,
		Timeout: DefaultTimeout,
		Logger:  observability.NoopLogger{},
	}
}

// response is what do hands back to typed callers.
type response struct {
	status int
	echoed bool // a JSON body was present and decoded into out
}

// do sends in as JSON (when non-nil) and decodes a 2xx body into out (when
// non-nil and present).
func (c *HTTP) do(ctx context.Context, method, path string, in, out any) (response, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return response{}, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return response{}, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if c.Token != nil {
		if tok := c.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	log := observability.OrNoop(c.Logger)
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debug("api request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return response{}, &domain.NetworkError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return response{}, &domain.NetworkError{Method: method, Path: path, Err: err}
	}
	log.Debug("api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	res := response{status: resp.StatusCode}
	if resp.StatusCode/100 != 2 {
		return res, &domain.ServerError{
			Status:  resp.StatusCode,
			Method:  method,
			Path:    path,
			Message: errorMessage(raw),
		}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return res, malformed(res.status, method, path, "decode: %v", err)
	}
	res.echoed = true
	return res, nil
}

// errorMessage extracts {"error": "..."} or falls back to the plain-text body.
func errorMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) <= maxMessage {
		return msg
	}
	cut := maxMessage
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}
