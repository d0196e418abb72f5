package docstore

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
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
)

// Client talks to a Server over HTTP and implements Store.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	dialer    *websocket.Dialer
	userAgent string
}

var _ Store = (*Client)(nil)

const (
	defaultAddr      = "127.0.0.1:7490"
	defaultUserAgent = "lexicon/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the server at addr (host:port or URL).
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Create stores data as a new document and returns its id.
func (c *Client) Create(ctx context.Context, collection string, data any) (string, error) {
	var payload struct {
		ID string `json:"id"`
	}
	rel := &url.URL{Path: "/v1/" + url.PathEscape(collection)}
	if err := c.do(ctx, http.MethodPost, rel, data, &payload); err != nil {
		return "", err
	}
	if payload.ID == "" {
		return "", fmt.Errorf("create document: empty id in response")
	}
	return payload.ID, nil
}

// Update merges patch into the document.
func (c *Client) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	rel := &url.URL{Path: "/v1/" + url.PathEscape(collection) + "/" + url.PathEscape(id)}
	return c.do(ctx, http.MethodPatch, rel, patch, nil)
}

// Delete removes the document.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	rel := &url.URL{Path: "/v1/" + url.PathEscape(collection) + "/" + url.PathEscape(id)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// QueryByField returns the documents whose field equals value.
func (c *Client) QueryByField(ctx context.Context, collection, field string, value any) ([]Document, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode query value: %w", err)
	}
	values := url.Values{}
	values.Set("field", field)
	values.Set("value", string(encoded))
	rel := &url.URL{Path: "/v1/" + url.PathEscape(collection), RawQuery: values.Encode()}

	var payload struct {
		Documents []Document `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Documents, nil
}

// Subscribe opens a websocket push stream for collection. onError is called
// once if the stream breaks; it is not called after unsubscribe or after ctx ends.
func (c *Client) Subscribe(ctx context.Context, collection string, onPush func([]Document), onError func(error)) (func(), error) {
	wsURL := c.websocketURL(collection)
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial subscription: status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial subscription: %w", err)
	}

	var closed atomic.Bool
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			closed.Store(true)
			_ = conn.Close()
		})
	}
	stop := context.AfterFunc(ctx, shutdown)

	go func() {
		defer shutdown()
		for {
			var frame pushFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if !closed.Load() {
					glog.Infof("[client]subscription %s error = %v", collection, err)
					if onError != nil {
						onError(fmt.Errorf("read subscription: %w", err))
					}
				}
				return
			}
			if closed.Load() {
				return
			}
			if frame.Error != "" {
				if onError != nil {
					onError(errors.New(frame.Error))
				}
				continue
			}
			if onPush != nil {
				onPush(frame.Documents)
			}
		}
	}()

	return func() {
		stop()
		shutdown()
	}, nil
}

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/health"}, nil, &payload); err != nil {
		return err
	}
	if payload.Status != "ok" {
		return fmt.Errorf("store status %q", payload.Status)
	}
	return nil
}

func (c *Client) websocketURL(collection string) string {
	u := *c.baseURL
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/v1/" + url.PathEscape(collection) + "/subscribe"
	return u.String()
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return statusError(rel, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(rel *url.URL, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&payload)

	base := fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	if payload.Error != "" {
		base = fmt.Errorf("api %s returned status %d: %s", rel.Path, resp.StatusCode, payload.Error)
	}
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, base)
	case http.StatusConflict:
		return fmt.Errorf("%w: %w", ErrConflict, base)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %w", ErrInvalid, base)
	}
	return base
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse store address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
