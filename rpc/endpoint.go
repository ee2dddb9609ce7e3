package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/petal-labs/jutge/core"
)

// Endpoint posts calls to a Jutge API URL and decodes the multipart replies.
// Endpoint is safe for concurrent use.
type Endpoint struct {
	config Config
}

// Compile-time check that Endpoint implements core.Backend.
var _ core.Backend = (*Endpoint)(nil)

// New creates an endpoint with the given options.
func New(opts ...Option) *Endpoint {
	cfg := Config{
		URL:        DefaultURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Endpoint{config: cfg}
}

// NewFromEnv creates an endpoint whose URL comes from the JUTGE_API_URL
// environment variable, falling back to DefaultURL. Options are applied after
// the environment, so WithURL wins over it.
//
//	client := core.NewClient(rpc.NewFromEnv())
func NewFromEnv(opts ...Option) *Endpoint {
	if url := strings.TrimSpace(os.Getenv(DefaultURLEnvVar)); url != "" {
		opts = append([]Option{WithURL(url)}, opts...)
	}
	return New(opts...)
}

// URL returns the API URL calls are posted to.
func (e *Endpoint) URL() string {
	return e.config.URL
}

// Execute sends one call and decodes its reply.
func (e *Endpoint) Execute(ctx context.Context, call *core.Call) (*core.Result, error) {
	body, contentType, err := EncodeRequest(call)
	if err != nil {
		return nil, err
	}

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range e.config.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "multipart/form-data")

	resp, err := e.httpClient().Do(req)
	if err != nil {
		return nil, newNetworkError(call.Func, err)
	}
	defer resp.Body.Close()

	raw, err := e.readBody(resp.Body)
	if err != nil {
		var m *errMalformed
		if errors.As(err, &m) {
			return nil, newMalformedError(call.Func, resp.StatusCode, err)
		}
		return nil, newNetworkError(call.Func, err)
	}

	return decodeReply(call.Func, resp.StatusCode, resp.Header.Get("Content-Type"), raw)
}

func (e *Endpoint) httpClient() *http.Client {
	if e.config.HTTPClient != nil {
		return e.config.HTTPClient
	}
	return http.DefaultClient
}

func (e *Endpoint) readBody(r io.Reader) ([]byte, error) {
	limit := e.config.MaxResponseSize
	if limit <= 0 {
		return io.ReadAll(r)
	}
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > limit {
		return nil, malformedf("reply exceeds %d bytes", limit)
	}
	return raw, nil
}

// decodeReply turns a multipart reply into a result or a typed error.
func decodeReply(fn string, status int, contentType string, body []byte) (*core.Result, error) {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && !strings.HasPrefix(mediaType, "multipart/") {
			return nil, newMalformedError(fn, status, malformedf("unexpected content type %q", mediaType))
		}
	}

	parts, err := DecodeParts(contentType, body)
	if err != nil {
		return nil, newMalformedError(fn, status, err)
	}
	if len(parts) == 0 {
		return nil, newMalformedError(fn, status, malformedf("reply has no parts"))
	}

	var (
		ans       *answer
		downloads []core.Download
	)
	for _, p := range parts {
		if p.IsFile() {
			downloads = append(downloads, p.Download())
			continue
		}
		if ans != nil {
			return nil, newMalformedError(fn, status, malformedf("reply has more than one answer part (part %d)", p.ID))
		}
		a, err := decodeAnswer(p)
		if err != nil {
			return nil, newMalformedError(fn, status, err)
		}
		ans = a
	}
	if ans == nil {
		return nil, newMalformedError(fn, status, malformedf("reply has no answer part"))
	}

	if err := mapAnswerError(fn, status, ans); err != nil {
		return nil, err
	}

	return &core.Result{Output: ans.output(), Downloads: downloads}, nil
}
