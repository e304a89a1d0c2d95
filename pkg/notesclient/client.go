// Package notesclient talks to the REST note store and implements
// session.RemoteSync on top of it.
package notesclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rich-notes-be/pkg/session"
)

const notesPath = "/api/note/v1"

// Options configures a Client. The client never reads the environment.
type Options struct {
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token   string
	Timeout time.Duration
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Ensure Client implements session.RemoteSync
var _ session.RemoteSync = &Client{}

// StatusError is returned for unexpected non-2xx answers.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notes api: status %d: %s", e.Code, e.Message)
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", opts.BaseURL, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, token: opts.Token, http: httpClient}, nil
}

// --- Wire structs ---

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type noteResponse struct {
	Id        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (r noteResponse) toNote() session.Note {
	n := session.Note{
		ID:        r.Id,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.CreatedAt,
	}
	if r.UpdatedAt != nil {
		n.UpdatedAt = *r.UpdatedAt
	}
	return n
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// --- session.RemoteSync ---

func (c *Client) ListNotes(ctx context.Context) ([]session.Note, error) {
	var res []noteResponse
	if err := c.do(ctx, http.MethodGet, notesPath, nil, &res); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	notes := make([]session.Note, len(res))
	for i, r := range res {
		notes[i] = r.toNote()
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (session.Note, error) {
	var res noteResponse
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &res); err != nil {
		return session.Note{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return res.toNote(), nil
}

func (c *Client) CreateNote(ctx context.Context, input session.NoteInput) (session.Note, error) {
	var res noteResponse
	body := noteRequest{Title: input.Title, Content: input.Content}
	if err := c.do(ctx, http.MethodPost, notesPath, body, &res); err != nil {
		return session.Note{}, fmt.Errorf("create note: %w", err)
	}
	return res.toNote(), nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, input session.NoteInput) (session.Note, error) {
	var res noteResponse
	body := noteRequest{Title: input.Title, Content: input.Content}
	if err := c.do(ctx, http.MethodPut, notePath(id), body, &res); err != nil {
		return session.Note{}, fmt.Errorf("update note %s: %w", id, err)
	}
	return res.toNote(), nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, notePath(id), nil, nil); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// Markdown fetches the server side Markdown export of a note.
func (c *Client) Markdown(ctx context.Context, id string) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, notePath(id)+"/markdown", nil)
	if err != nil {
		return "", fmt.Errorf("export note %s: %w", id, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("export note %s: %w", id, statusError(resp.StatusCode, bodyBytes))
	}
	return string(bodyBytes), nil
}

func notePath(id string) string {
	return notesPath + "/" + url.PathEscape(id)
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		payloadBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(payloadBytes)
	}

	resp, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, bodyBytes)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("notes api request failed: %w", err)
	}
	return resp, nil
}

// statusError maps 404 to session.ErrNotFound and keeps the server message
// for everything else.
func statusError(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		msg = env.Message
	}

	if code == http.StatusNotFound {
		return fmt.Errorf("%s: %w", msg, session.ErrNotFound)
	}
	return &StatusError{Code: code, Message: msg}
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
