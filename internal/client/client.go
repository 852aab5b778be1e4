package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jask/artisanmap/internal/directory"
)

const (
	ResourceArtisans = "artisans"
	ResourcePlaces   = "places"

	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

var (
	// ErrNotArray is returned when a payload decodes to anything but a JSON array.
	ErrNotArray = errors.New("response payload is not an array")
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("unexpected status")
)

// Fallback holds the bundled sequences served when the API can't be used.
type Fallback struct {
	Artisans []directory.Item
	Places   []directory.Item
}

// Client fetches the directory collections and never fails: every error is
// absorbed into a degraded Result carrying the bundled data.
type Client struct {
	baseURL  string
	http     *http.Client
	log      *zap.Logger
	timeout  time.Duration
	fallback Fallback
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTimeout bounds each request. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func New(baseURL string, fallback Fallback, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:     http.DefaultClient,
		log:      zap.NewNop(),
		timeout:  defaultTimeout,
		fallback: fallback,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) FetchArtisans(ctx context.Context) Result[[]directory.Item] {
	return c.fetch(ctx, ResourceArtisans, c.fallback.Artisans)
}

func (c *Client) FetchPlaces(ctx context.Context) Result[[]directory.Item] {
	return c.fetch(ctx, ResourcePlaces, c.fallback.Places)
}

func (c *Client) fetch(ctx context.Context, resource string, fallback []directory.Item) Result[[]directory.Item] {
	url := c.baseURL + "/" + resource
	items, err := c.get(ctx, url)
	if err == nil {
		return Ok(items)
	}
	err = fmt.Errorf("%s: %w", resource, err)
	fields := []zap.Field{zap.String("resource", resource), zap.String("url", url), zap.Error(err)}
	if ctx.Err() != nil {
		c.log.Debug("request abandoned, using bundled data", fields...)
	} else {
		c.log.Warn("falling back to bundled data due to request failure", fields...)
	}
	return Degraded(directory.CloneItems(fallback), err)
}

func (c *Client) get(ctx context.Context, url string) ([]directory.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w %d", ErrStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return decodeItems(body)
}

// decodeItems accepts only a top-level JSON array.
func decodeItems(body []byte) ([]directory.Item, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("decode: invalid JSON")
		}
		return nil, ErrNotArray
	}
	items := []directory.Item{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return items, nil
}
