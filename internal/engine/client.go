package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/intervu-dev/intervu/internal/interview"
	"github.com/intervu-dev/intervu/internal/log"
)

// Client communicates with the interview engine over HTTP.
// Unary requests carry a timeout; the streaming endpoint uses a separate
// untimed client since a response stream may legitimately outlive any fixed
// deadline.
type Client struct {
	baseURL string
	unary   *http.Client
	stream  *http.Client
	logger  *log.Logger // optional; nil disables event logging
}

// New creates a Client for the engine at baseURL.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		unary:   &http.Client{Timeout: timeout},
		stream:  &http.Client{},
		logger:  logger,
	}
}

// InitSession creates a session for the chosen role and returns the
// engine-assigned session handle.
func (c *Client) InitSession(ctx context.Context, roleID string) (string, error) {
	var out initResponse
	if err := c.post(ctx, "/api/sessions/init", initRequest{RoleID: roleID}, &out); err != nil {
		return "", err
	}
	c.event(log.LogEvent{Event: log.EventSessionCreated, SessionID: out.SessionID, RoleID: roleID})
	return out.SessionID, nil
}

// StartInterview starts the interview and returns the engine's first
// assistant message.
func (c *Client) StartInterview(ctx context.Context, sessionID string) (string, error) {
	var out startResponse
	if err := c.post(ctx, "/api/sessions/start", sessionRequest{SessionID: sessionID}, &out); err != nil {
		return "", err
	}
	c.event(log.LogEvent{Event: log.EventInterviewStarted, SessionID: sessionID})
	return out.Response, nil
}

// History fetches the ordered transcript recorded by the engine.
func (c *Client) History(ctx context.Context, sessionID string) ([]interview.Message, error) {
	var out []interview.Message
	if err := c.get(ctx, "/api/sessions/"+url.PathEscape(sessionID)+"/history", &out); err != nil {
		return nil, err
	}
	c.event(log.LogEvent{Event: log.EventHistoryLoaded, SessionID: sessionID, Messages: len(out)})
	return out, nil
}

// Status fetches the authoritative session status. The caller replaces its
// cached copy wholesale with the returned value; this is an idempotent read
// with no remote mutation and is safe to invoke redundantly.
func (c *Client) Status(ctx context.Context, sessionID string) (*interview.Status, error) {
	var out interview.Status
	if err := c.get(ctx, "/api/sessions/"+url.PathEscape(sessionID)+"/status", &out); err != nil {
		return nil, err
	}
	c.event(log.LogEvent{
		Event:         log.EventStatusRefreshed,
		SessionID:     sessionID,
		Phase:         out.CurrentPhase,
		QuestionCount: out.QuestionCount,
	})
	return &out, nil
}

// Send posts one user message atomically and returns the full response.
// An {error} payload comes back as *AppError; the caller treats it as a
// ledger no-op.
func (c *Client) Send(ctx context.Context, sessionID, message string) (*SendResult, error) {
	started := time.Now()
	var out sendResponse
	if err := c.post(ctx, "/api/chat/send", chatRequest{Message: message, SessionID: sessionID}, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		err := &AppError{Message: out.Error}
		c.event(log.LogEvent{Event: log.EventRequestFailed, SessionID: sessionID, Error: out.Error})
		return nil, err
	}
	c.event(log.LogEvent{
		Event:      log.EventResponseReceived,
		SessionID:  sessionID,
		DurationMs: time.Since(started).Milliseconds(),
	})
	return &SendResult{Response: out.Response, InterviewCompleted: out.InterviewCompleted}, nil
}

// OpenStream posts one user message to the streaming endpoint and returns
// the raw incremental response body. There is no framing: the body is plain
// text and its exhaustion is the only completion signal. The caller owns the
// returned body.
func (c *Client) OpenStream(ctx context.Context, sessionID, message string) (io.ReadCloser, error) {
	body, err := json.Marshal(chatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, fmt.Errorf("engine: marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat/stream", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("engine: creating request: %w", err)
	}
	c.prepare(req)

	resp, err := c.stream.Do(req)
	if err != nil {
		c.event(log.LogEvent{Event: log.EventRequestFailed, SessionID: sessionID, Error: err.Error()})
		return nil, fmt.Errorf("engine: opening stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.statusError(resp)
	}
	return resp.Body, nil
}

// EndSession requests manual termination and returns the engine's optional
// closing message ("" when the engine sends none).
func (c *Client) EndSession(ctx context.Context, sessionID string) (string, error) {
	var out endResponse
	if err := c.post(ctx, "/api/sessions/end", sessionRequest{SessionID: sessionID}, &out); err != nil {
		return "", err
	}
	c.event(log.LogEvent{Event: log.EventInterviewEnded, SessionID: sessionID})
	return out.Response, nil
}

// post issues a JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("engine: marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("engine: creating request: %w", err)
	}
	c.prepare(req)

	return c.do(req, out)
}

// get issues a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("engine: creating request: %w", err)
	}
	c.prepare(req)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.unary.Do(req)
	if err != nil {
		c.event(log.LogEvent{Event: log.EventRequestFailed, Error: err.Error()})
		return fmt.Errorf("engine: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("engine: decoding %s response: %w", req.URL.Path, err)
		}
	}
	return nil
}

// prepare sets common headers. Each request carries a fresh id so client log
// events can be correlated with engine-side logs.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

// statusError surfaces a non-200 response, including the engine's detail
// message when one is present.
func (c *Client) statusError(resp *http.Response) error {
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&detail); err == nil && detail.Detail != "" {
		return fmt.Errorf("engine: %s: %s", resp.Status, detail.Detail)
	}
	return fmt.Errorf("engine: unexpected status %s", resp.Status)
}

// event appends a log event, if a logger is configured. Logging failures are
// ignored: the event log must never interfere with the session.
func (c *Client) event(ev log.LogEvent) {
	if c.logger == nil {
		return
	}
	_ = c.logger.Append(ev)
}
