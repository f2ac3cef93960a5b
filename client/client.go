package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/lamplight/api"
	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/record"
	"github.com/five82/lamplight/recordset"
)

var (
	// ErrMissingCredentials is returned when key, lampid or project is unset.
	ErrMissingCredentials = errors.New("lamplight API access parameters have not been set")
	// ErrIncompleteRequest is returned when a request names no action or method.
	ErrIncompleteRequest = errors.New("request needs an action and a method")
)

// Fetcher retrieves records. It is implemented by *Client and can be used for
// testing.
type Fetcher interface {
	Fetch(ctx context.Context, query FetchQuery) (*recordset.RecordSet, error)
}

// Saver submits mutable records.
type Saver interface {
	Save(ctx context.Context, rec record.Mutable) (*datain.ResponseCollection, error)
	AttendWork(ctx context.Context, workID int, attendee string) (*datain.ResponseCollection, error)
}

// Ensure Client implements Fetcher and Saver at compile time.
var (
	_ Fetcher = (*Client)(nil)
	_ Saver   = (*Client)(nil)
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL   = "https://lamplight.online/api/"
	defaultUserAgent = "lamplight-go/0.1"
	requestTimeout   = 30 * time.Second
)

// Credentials identify the calling organisation and project.
type Credentials struct {
	Key     string
	LampID  int
	Project int
}

// Valid reports whether every credential is set.
func (c Credentials) Valid() bool {
	return strings.TrimSpace(c.Key) != "" && c.LampID > 0 && c.Project > 0
}

// Client talks to the Lamplight HTTP API. It is safe for concurrent use; the
// last exchange reflects whichever request completed most recently.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	creds     Credentials
	logger    *zap.Logger
	records   *recordset.Factory
	datain    *datain.Factory

	mu      sync.Mutex
	lastReq api.RequestContext
	lastEnv *api.Envelope
}

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
	registry  *record.Registry
	policy    datain.Policy
}

// WithBaseURL points the client at a different API root.
func WithBaseURL(base string) Option { return func(o *options) { o.baseURL = base } }

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.http = hc } }

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithRegistry sets the record registry used for fetch results.
func WithRegistry(r *record.Registry) Option { return func(o *options) { o.registry = r } }

// WithDatainPolicy sets how submission responses are read.
func WithDatainPolicy(p datain.Policy) Option { return func(o *options) { o.policy = p } }

// New builds a Client for creds.
func New(creds Credentials, opts ...Option) (*Client, error) {
	o := options{
		baseURL:   DefaultBaseURL,
		timeout:   requestTimeout,
		userAgent: defaultUserAgent,
		policy:    datain.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	base, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}
	hc := o.http
	if hc == nil {
		hc = &http.Client{Timeout: o.timeout}
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		http:      hc,
		userAgent: o.userAgent,
		creds:     creds,
		logger:    logger,
		records:   recordset.NewFactory(o.registry),
		datain:    datain.NewFactory(o.policy),
	}, nil
}

// Request is a raw API call.
type Request struct {
	Action string
	Method string
	// Post sends Params as a form body instead of the query string.
	Post   bool
	Params url.Values
}

// Do sends req and records it as the last exchange. A network failure is
// returned as an error and recorded as a transport-failure envelope.
func (c *Client) Do(ctx context.Context, req Request) (*api.Envelope, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	_, env, err := c.send(ctx, req)
	return env, err
}

func (c *Client) send(ctx context.Context, req Request) (api.RequestContext, *api.Envelope, error) {
	if !c.creds.Valid() {
		return api.RequestContext{}, nil, ErrMissingCredentials
	}
	action, method := strings.TrimSpace(req.Action), strings.TrimSpace(req.Method)
	if action == "" || method == "" {
		return api.RequestContext{}, nil, ErrIncompleteRequest
	}

	rc := api.NewRequestContext(action, method, req.Params)
	rc.RequestID = uuid.NewString()

	query := url.Values{}
	var body io.Reader
	httpMethod := http.MethodGet
	if req.Post {
		httpMethod = http.MethodPost
		body = strings.NewReader(rc.Parameters.Encode())
	} else {
		for k, v := range rc.Parameters {
			query[k] = append([]string(nil), v...)
		}
	}
	query.Set("key", c.creds.Key)
	query.Set("lampid", strconv.Itoa(c.creds.LampID))
	query.Set("project", strconv.Itoa(c.creds.Project))

	rel := &url.URL{Path: action + "/" + method + "/format/json", RawQuery: query.Encode()}
	reqURL := c.baseURL.ResolveReference(rel)
	httpReq, err := http.NewRequestWithContext(ctx, httpMethod, reqURL.String(), body)
	if err != nil {
		return rc, nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", rc.RequestID)
	if req.Post {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	log := c.logger.With(
		zap.String("request_id", rc.RequestID),
		zap.String("http_method", httpMethod),
		zap.String("endpoint", rc.Pair()),
	)
	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.remember(rc, api.TransportFailure(err))
		log.Warn("lamplight request failed", zap.Error(err))
		return rc, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.remember(rc, api.TransportFailure(err))
		log.Warn("lamplight response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return rc, nil, fmt.Errorf("read response: %w", err)
	}
	env := api.NewEnvelope(resp.StatusCode, resp.Header, payload)
	c.remember(rc, env)
	log.Debug("lamplight request complete",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(payload)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rc, env, nil
}

func (c *Client) remember(rc api.RequestContext, env *api.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastReq = rc
	c.lastEnv = env
}

func (c *Client) last() (api.RequestContext, *api.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReq, c.lastEnv
}

// LastRequest returns the context of the last completed request.
func (c *Client) LastRequest() api.RequestContext {
	rc, _ := c.last()
	return rc
}

// LastResponse returns the envelope of the last completed request, or nil.
func (c *Client) LastResponse() *api.Envelope {
	_, env := c.last()
	return env
}

// LastRecordSet rebuilds the last response as a RecordSet. override replaces
// the derived record type name when non-empty.
func (c *Client) LastRecordSet(override string) (*recordset.RecordSet, error) {
	rc, env := c.last()
	return c.records.Build(rc, env, override)
}

// LastDatainResponse rebuilds the last response as a submission outcome.
func (c *Client) LastDatainResponse() (*datain.ResponseCollection, error) {
	rc, env := c.last()
	return c.datain.Build(rc, env)
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
