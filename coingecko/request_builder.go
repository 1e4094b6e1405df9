package coingecko

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	// COINGECKO_DEFAULT_URL is the public API base used when no override is set
	COINGECKO_DEFAULT_URL = "https://api.coingecko.com/api/v3"

	// coinsAPIPath is the upstream endpoint serving coin data keyed by id
	coinsAPIPath = "/coins/"
)

// buildURL safely combines a base URL with a path
func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	trimmedPath := strings.TrimLeft(path, "/")

	return baseURL + "/" + trimmedPath
}

// CoinsRequestBuilder implements the Builder pattern for upstream coin requests
type CoinsRequestBuilder struct {
	baseURL    string
	httpMethod string
	apiPath    string
	params     map[string]string
	userAgent  string
	headers    map[string]string
}

// NewCoinsRequestBuilder creates a request builder for the coins endpoint
func NewCoinsRequestBuilder(baseURL string) *CoinsRequestBuilder {
	rb := &CoinsRequestBuilder{
		baseURL:    baseURL,
		apiPath:    coinsAPIPath,
		httpMethod: "GET",
		params:     make(map[string]string),
		headers:    make(map[string]string),
		userAgent:  "Mozilla/5.0 Coins-Proxy",
	}

	rb.headers["Accept"] = "application/json"

	return rb
}

// WithIds adds the comma-joined identifier list as the ids parameter
func (rb *CoinsRequestBuilder) WithIds(ids []string) *CoinsRequestBuilder {
	if len(ids) > 0 {
		rb.params["ids"] = strings.Join(ids, ",")
	}
	return rb
}

// With adds a custom parameter to the URL query
func (rb *CoinsRequestBuilder) With(key, value string) *CoinsRequestBuilder {
	rb.params[key] = value
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *CoinsRequestBuilder) WithHeader(name, value string) *CoinsRequestBuilder {
	rb.headers[name] = value
	return rb
}

// WithUserAgent sets the User-Agent header
func (rb *CoinsRequestBuilder) WithUserAgent(userAgent string) *CoinsRequestBuilder {
	rb.userAgent = userAgent
	return rb
}

// BuildURL builds the complete URL for the request
func (rb *CoinsRequestBuilder) BuildURL() string {
	fullPath := buildURL(rb.baseURL, rb.apiPath)

	query := url.Values{}
	for key, value := range rb.params {
		query.Add(key, value)
	}

	finalURL := fullPath
	queryString := query.Encode()
	if queryString != "" {
		finalURL = fmt.Sprintf("%s?%s", finalURL, queryString)
	}

	return finalURL
}

// Build creates an http.Request object
func (rb *CoinsRequestBuilder) Build() (*http.Request, error) {
	request, err := http.NewRequest(rb.httpMethod, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	for name, value := range rb.headers {
		request.Header.Set(name, value)
	}
	request.Header.Set("User-Agent", rb.userAgent)

	return request, nil
}
