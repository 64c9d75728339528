package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultRetries = 2
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Retries aplica a errores de red y respuestas 5xx.
	Retries       int
	RetryWaitTime time.Duration
}

// Client envuelve *resty.Client con los defaults que usan los adapters.
type Client struct {
	r *resty.Client
}

func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("httpclient: empty base url")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryWaitTime <= 0 {
		opts.RetryWaitTime = 200 * time.Millisecond
	}

	r := resty.New().
		SetBaseURL(base).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWaitTime).
		SetRetryMaxWaitTime(4*opts.RetryWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode() >= http.StatusInternalServerError)
		}).
		SetHeader("Accept", "application/json")

	return &Client{r: r}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// IsNotFound indica si err es un 404 del servicio remoto.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// GetJSON hace GET sobre un path relativo y decodifica el body en out.
// pathParams reemplaza {nombre} en el path (escapado).
func (c *Client) GetJSON(ctx context.Context, path string, pathParams map[string]string, out any) error {
	if c == nil || c.r == nil {
		return errors.New("httpclient: nil client")
	}

	resp, err := c.r.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(resp.String()),
		}
	}
	return nil
}
