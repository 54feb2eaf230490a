package httputil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/klauspost/compress/gzip"
)

const (
	headerTimeout = 30 * time.Second
	userAgent     = "cliquer"
)

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, unexpected status codes).
	ErrNetwork = errors.New("network error")
)

// Client fetches remote edge lists.
type Client struct {
	HTTP *http.Client

	// Attempts bounds the number of tries for retryable failures.
	Attempts int
	// Delay is the wait before the first retry.
	Delay time.Duration
}

// NewClient returns a client with 3 attempts and a 1 second initial backoff.
// Only response headers are bounded by a timeout; bodies stream for as long
// as the caller's context allows.
func NewClient() *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.ResponseHeaderTimeout = headerTimeout
	return &Client{
		HTTP:     &http.Client{Transport: t},
		Attempts: 3,
		Delay:    time.Second,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Open requests rawURL and returns its body, decompressed if it is gzip.
// The caller must close the returned reader.
func (c *Client) Open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := Retry(ctx, c.Attempts, c.Delay, func() error {
		var err error
		body, err = c.do(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	rc, err := Decompress(body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return rc, nil
}

func (c *Client) do(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500, code == http.StatusTooManyRequests:
		return Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// Decompress wraps rc with a gzip reader when its content starts with the
// gzip magic bytes. Other content is returned unchanged. Closing the result
// closes rc.
func Decompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		// Short or empty input is left for the parser to judge.
		return readCloser{Reader: br, closers: []io.Closer{rc}}, nil
	}
	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return readCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
