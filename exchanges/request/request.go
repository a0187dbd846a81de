// Package request defines the descriptor handed from an exchange client to
// its HTTP transport, the transport contract itself, and a default
// implementation. The transport owns delivery concerns: rate-weight pacing,
// transient network retry and timeouts. The core never retries an
// exchange-reported failure; classification of those happens upstream.
package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	errRequestNil = errors.New("request is nil")
	errURLEmpty   = errors.New("request url is empty")
)

// Request is the outbound descriptor produced by the signing layer
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
	// Weight is the endpoint's rate cost as published by the exchange
	Weight int
}

// Response is the raw transport result prior to parsing
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Transport executes a prepared request. Implementations must be safe for
// concurrent use; independent requests are issued fan-out and awaited jointly.
type Transport interface {
	Execute(ctx context.Context, r *Request) (*Response, error)
}

// Requester is the default Transport backed by net/http with token-bucket
// pacing of endpoint weights and bounded retry of transient network faults
type Requester struct {
	name       string
	client     *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
	userAgent  string
	maxRetries int
}

// Option configures a Requester
type Option func(*Requester)

// WithLimiter sets the token-bucket refill rate and burst used to pace
// endpoint weights
func WithLimiter(r rate.Limit, burst int) Option {
	return func(q *Requester) { q.limiter = rate.NewLimiter(r, burst) }
}

// WithLogger attaches a structured logger for request debugging
func WithLogger(l *zap.Logger) Option {
	return func(q *Requester) { q.log = l }
}

// WithUserAgent sets the outbound User-Agent header
func WithUserAgent(ua string) Option {
	return func(q *Requester) { q.userAgent = ua }
}

// WithRetries bounds transient-fault retries; zero disables retry
func WithRetries(n int) Option {
	return func(q *Requester) { q.maxRetries = n }
}

// New returns a Requester ready for use. A nil client falls back to a
// sensibly-timed default.
func New(name string, client *http.Client, opts ...Option) *Requester {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	r := &Requester{
		name:       name,
		client:     client,
		limiter:    rate.NewLimiter(rate.Limit(20), 40),
		log:        zap.NewNop(),
		maxRetries: 2,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Execute implements Transport
func (q *Requester) Execute(ctx context.Context, r *Request) (*Response, error) {
	if r == nil {
		return nil, errRequestNil
	}
	if r.URL == "" {
		return nil, errURLEmpty
	}
	weight := r.Weight
	if weight < 1 {
		weight = 1
	}
	if err := q.limiter.WaitN(ctx, weight); err != nil {
		return nil, err
	}

	q.log.Debug("sending request",
		zap.String("exchange", q.name),
		zap.String("method", r.Method),
		zap.String("url", r.URL),
		zap.Int("weight", weight))

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := q.do(ctx, r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// Only pure transport faults retry; anything the exchange actually
		// answered goes upstream for classification
		if ctx.Err() != nil || attempt >= q.maxRetries {
			break
		}
		q.log.Debug("transient transport fault, retrying",
			zap.String("exchange", q.name),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(bo.NextBackOff()):
		}
	}
	return nil, fmt.Errorf("%s request failed: %w", q.name, lastErr)
}

func (q *Requester) do(ctx context.Context, r *Request) (*Response, error) {
	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if q.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", q.userAgent)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       contents,
	}, nil
}

// DecodeJSON unmarshals a response body preserving numeric lexical forms;
// numbers decode as json.Number inside any-typed containers rather than
// float64
func DecodeJSON(body []byte, result any) error {
	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()
	return d.Decode(result)
}
