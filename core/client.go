package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Backend sends a call to the API and decodes the reply.
// Backends SHOULD be safe for concurrent calls.
type Backend interface {
	Execute(ctx context.Context, call *Call) (*Result, error)
}

// Client is the main entry point for calling the API.
// Client is safe for concurrent use.
type Client struct {
	backend    Backend
	session    *Session
	cache      *ResponseCache
	useCache   bool
	logger     *zap.Logger
	telemetry  TelemetryHook
	middleware []Middleware
	call       CallFunc
}

// callIDs numbers calls process-wide so hooks shared by several clients can
// still pair start and end events.
var callIDs atomic.Uint64

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Client on top of the given backend.
func NewClient(b Backend, opts ...ClientOption) *Client {
	c := &Client{
		backend:   b,
		session:   NewSession(""),
		cache:     NewResponseCache(nil),
		useCache:  true,
		logger:    zap.NewNop(),
		telemetry: NoopTelemetryHook{},
	}
	for _, opt := range opts {
		opt(c)
	}

	chain := []Middleware{LoggingMiddleware(c.logger)}
	if c.useCache {
		chain = append(chain, CacheMiddleware(c.cache))
	}
	chain = append(chain, c.middleware...)
	c.call = Chain(chain...)(b.Execute)

	return c
}

// WithLogger sets the logger used by the client.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTelemetry sets the telemetry hook for the client.
func WithTelemetry(h TelemetryHook) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// WithToken starts the client with an existing session token.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.session.Set(token)
	}
}

// WithSession makes the client share an existing session.
func WithSession(s *Session) ClientOption {
	return func(c *Client) {
		if s != nil {
			c.session = s
		}
	}
}

// WithClientTTLs sets the client-side cache TTLs per function.
func WithClientTTLs(ttls map[string]time.Duration) ClientOption {
	return func(c *Client) {
		for fn, ttl := range ttls {
			c.cache.SetTTL(fn, ttl)
		}
	}
}

// WithCache replaces the response cache.
func WithCache(cache *ResponseCache) ClientOption {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithoutCache disables the response cache.
func WithoutCache() ClientOption {
	return func(c *Client) {
		c.useCache = false
	}
}

// WithMiddleware adds middleware that runs after logging and caching,
// closest to the backend.
func WithMiddleware(m ...Middleware) ClientOption {
	return func(c *Client) {
		c.middleware = append(c.middleware, m...)
	}
}

// Backend returns the underlying backend.
func (c *Client) Backend() Backend {
	return c.backend
}

// Session returns the session shared by the calls of this client.
func (c *Client) Session() *Session {
	return c.session
}

// Cache returns the response cache.
func (c *Client) Cache() *ResponseCache {
	return c.cache
}

// SetToken replaces the session token, e.g. with one read from disk.
func (c *Client) SetToken(token string) {
	c.session.Set(token)
}

// Execute calls fn with input and files and returns the raw output and the downloads.
func (c *Client) Execute(ctx context.Context, fn string, input any, files ...[]byte) (json.RawMessage, []Download, error) {
	result, err := c.Call(ctx, &Call{Func: fn, Input: input, Files: files})
	if err != nil {
		return nil, nil, err
	}
	return result.Output, result.Downloads, nil
}

// Call executes call. The session token is read once, when the call starts.
func (c *Client) Call(ctx context.Context, call *Call) (*Result, error) {
	if call.Func == "" {
		return nil, ErrFuncRequired
	}

	snapshot := *call
	snapshot.Meta = c.session.Meta()

	id := callIDs.Add(1)
	start := time.Now()
	c.telemetry.OnCallStart(CallStartEvent{
		ID:            id,
		Func:          snapshot.Func,
		Files:         len(snapshot.Files),
		Authenticated: snapshot.Meta != nil,
		Start:         start,
	})

	result, err := c.call(ctx, &snapshot)

	end := CallEndEvent{ID: id, Func: snapshot.Func, Start: start, End: time.Now(), Err: err}
	if result != nil {
		end.Downloads = len(result.Downloads)
	}
	c.telemetry.OnCallEnd(end)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Login authenticates with email and password. On success the returned token
// is attached to every following call of this client.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	input := map[string]string{"email": email, "password": password}

	result, err := c.Call(ctx, &Call{Func: "auth.login", Input: input})
	if err != nil {
		return nil, err
	}

	var creds Credentials
	if err := result.Decode(&creds); err != nil {
		return nil, &APIError{
			Kind:    KindMalformedResponse,
			Func:    "auth.login",
			Message: "invalid credentials: " + err.Error(),
			Err:     err,
		}
	}
	if creds.Error != "" {
		return nil, &APIError{Kind: KindUnauthorized, Func: "auth.login", Message: creds.Error}
	}
	if creds.Token == "" {
		return nil, &APIError{Kind: KindUnauthorized, Func: "auth.login", Message: "no token received"}
	}

	c.session.Set(creds.Token)
	return &creds, nil
}

// Logout ends the session on the server and always forgets the local token.
// An Unauthorized reply (e.g. an expired token) is not an error.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()

	_, _, err := c.Execute(ctx, "auth.logout", nil)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}
	return nil
}
