package coingecko

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// ClientOptions configures timeouts for upstream requests
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClient wraps an http.Client with explicit timeouts and status reporting.
// Every fetch is a single attempt: a failure aborts the whole request.
type HTTPClient struct {
	Client        *http.Client
	Opts          ClientOptions
	StatusHandler IHttpStatusHandler
}

// NewHTTPClient creates a new HTTP client with the given options
func NewHTTPClient(opts ClientOptions, handler IHttpStatusHandler) *HTTPClient {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClient{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
	}
}

// ExecuteRequest performs the request and reads the full response body.
// Non-2xx statuses produce a *RetrievalError.
func (c *HTTPClient) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	requestStart := time.Now()

	resp, err := c.Client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		c.onRequest("error")
		return nil, requestDuration, fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.onRequest("error")
		return nil, requestDuration, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.onRequest("error")
		return nil, requestDuration, &RetrievalError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.onRequest("success")
	return body, requestDuration, nil
}

func (c *HTTPClient) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}
