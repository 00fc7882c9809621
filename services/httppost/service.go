package httppost

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
	"github.com/pkg/errors"
	"github.com/secmon/alertfwd/bufpool"
	"github.com/secmon/alertfwd/keyvalue"
	"github.com/secmon/alertfwd/tlsconfig"
)

// maxResponseBody bounds how much of a response is kept for logging.
const maxResponseBody = 64 * 1024

const RequestIDHeader = "X-Request-Id"

type Diagnostic interface {
	WithContext(ctx ...keyvalue.T) Diagnostic
	Posted(host string, status int, elapsed time.Duration)
	Error(msg string, err error, ctx ...keyvalue.T)
}

// Response is the part of a webhook response kept after the call.
type Response struct {
	StatusCode int
	Body       []byte
}

// StatusError is returned when the endpoint answers with a non 2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Endpoint is a single POST target.
type Endpoint struct {
	url     string
	headers map[string]string
	auth    BasicAuth
}

func NewEndpoint(url string, headers map[string]string, auth BasicAuth) *Endpoint {
	return &Endpoint{
		url:     url,
		headers: headers,
		auth:    auth,
	}
}

func (e *Endpoint) NewHTTPRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create POST request")
	}

	if e.auth.valid() {
		req.SetBasicAuth(e.auth.Username, e.auth.Password)
	}

	for k, v := range e.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

type Service struct {
	c      Config
	client *http.Client
	bp     *bufpool.Pool
	diag   Diagnostic
}

func NewService(c Config, d Diagnostic) (*Service, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tlsConfig, err := tlsconfig.Create(c.TLS)
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}
	timeout := time.Duration(c.Timeout)
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		c: c,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		bp:   bufpool.New(),
		diag: d,
	}, nil
}

func (s *Service) Open() error {
	return nil
}

func (s *Service) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// Timeout reports the per request timeout.
func (s *Service) Timeout() time.Duration {
	return s.client.Timeout
}

// PostJSON encodes v and posts it to rawURL.
func (s *Service) PostJSON(ctx context.Context, rawURL string, headers map[string]string, v interface{}) (*Response, error) {
	body := s.bp.Get()
	defer body.Close()
	if err := json.NewEncoder(body).Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to marshal payload json")
	}

	h := make(map[string]string, len(headers)+1)
	h["Content-Type"] = "application/json"
	for k, v := range headers {
		h[k] = v
	}
	return s.Post(ctx, rawURL, h, bytes.NewReader(body.Bytes()))
}

// Post sends exactly one request. It never retries.
// A non 2xx answer is returned as both a Response and a *StatusError.
func (s *Service) Post(ctx context.Context, rawURL string, headers map[string]string, body io.Reader) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	req, err := s.newEndpoint(rawURL, headers).NewHTTPRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.diag.Error("failed to POST", err, keyvalue.KV("host", u.Host))
		return nil, errors.Wrap(err, "failed to POST")
	}
	defer resp.Body.Close()

	r := &Response{StatusCode: resp.StatusCode}
	r.Body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return r, errors.Wrap(err, "failed to read response")
	}
	s.diag.Posted(u.Host, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return r, &StatusError{StatusCode: resp.StatusCode, Body: r.Body}
	}
	return r, nil
}

func (s *Service) newEndpoint(rawURL string, headers map[string]string) *Endpoint {
	h := make(map[string]string, len(s.c.Headers)+len(headers)+2)
	if s.c.UserAgent != "" {
		h["User-Agent"] = s.c.UserAgent
	}
	h[RequestIDHeader] = uuid.New().String()
	for k, v := range s.c.Headers {
		h[k] = v
	}
	for k, v := range headers {
		h[k] = v
	}
	return NewEndpoint(rawURL, h, s.c.BasicAuth)
}
