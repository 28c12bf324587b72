package dkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	operationPublish = "publish"
	operationGet     = "get"
	operationQuery   = "query"

	statusCompleted = "COMPLETED"
	statusFailed    = "FAILED"
)

type Config struct {
	Endpoint        string
	Blockchain      string
	Timeout         time.Duration
	PollInterval    time.Duration
	MaxPollAttempts int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.MaxPollAttempts <= 0 {
		c.MaxPollAttempts = 30
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	return c
}

// HTTPClient talks to a DKG node through its asynchronous operation API: every
// operation is started with POST /<operation> and its outcome is polled from
// GET /<operation>/<operationId>.
type HTTPClient struct {
	cfg      Config
	http     *http.Client
	tracer   trace.Tracer
	observer Observer
	breaker  *gobreaker.CircuitBreaker
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

func WithObserver(o Observer) Option {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

func NewHTTPClient(cfg Config, opts ...Option) *HTTPClient {
	cfg = cfg.withDefaults()
	c := &HTTPClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		tracer:  otel.Tracer("github.com/dkg-node/dkg-plugins/pkg/dkg"),
		breaker: newBreaker(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) Asset() AssetService {
	return assetService{c: c}
}

func (c *HTTPClient) Graph() GraphService {
	return graphService{c: c}
}

type assetService struct {
	c *HTTPClient
}

type publishRequest struct {
	Assertion  any    `json:"assertion"`
	Blockchain string `json:"blockchain,omitempty"`
	EpochsNum  int    `json:"epochsNum"`
	Immutable  bool   `json:"immutable"`
}

func (s assetService) Create(ctx context.Context, content any, opts CreateOptions) (*CreateResult, error) {
	data, err := s.c.operate(ctx, operationPublish, publishRequest{
		Assertion:  content,
		Blockchain: s.c.cfg.Blockchain,
		EpochsNum:  opts.EpochsNum,
		Immutable:  opts.Immutable,
	})
	if err != nil {
		return nil, err
	}

	result := &CreateResult{}
	if err = json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("decode publish result: %w", err)
	}
	if result.UAL == "" {
		return nil, &OperationError{Operation: operationPublish, Message: "node did not return a UAL"}
	}
	return result, nil
}

type getRequest struct {
	ID string `json:"id"`
}

func (s assetService) Get(ctx context.Context, ual string) (Asset, error) {
	data, err := s.c.operate(ctx, operationGet, getRequest{ID: ual})
	if err != nil {
		return nil, err
	}

	var asset Asset
	if err = json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("decode get result: %w", err)
	}
	return asset, nil
}

type graphService struct {
	c *HTTPClient
}

type queryRequest struct {
	Query string    `json:"query"`
	Type  QueryMode `json:"type"`
}

func (s graphService) Query(ctx context.Context, query string, mode QueryMode) (any, error) {
	data, err := s.c.operate(ctx, operationQuery, queryRequest{Query: query, Type: mode})
	if err != nil {
		return nil, err
	}

	var result any
	if len(data) == 0 {
		return result, nil
	}
	if err = json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode query result: %w", err)
	}
	return result, nil
}

type operationStarted struct {
	OperationID string `json:"operationId"`
}

type operationResult struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type operationFailure struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

func (c *HTTPClient) operate(ctx context.Context, operation string, body any) (data json.RawMessage, err error) {
	ctx, span := c.tracer.Start(ctx, "dkg."+operation, trace.WithAttributes(
		attribute.String("dkg.endpoint", c.cfg.Endpoint),
		attribute.String("dkg.blockchain", c.cfg.Blockchain),
	))
	defer span.End()

	if c.observer != nil {
		done := c.observer.ObserveRequest(operation)
		defer func() { done(err) }()
	}

	res, err := c.guarded(func() (any, error) {
		return c.run(ctx, span, operation, body)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("dkg operation failed", slog.String("operation", operation), slog.String("error", err.Error()))
		return nil, err
	}
	return res.(json.RawMessage), nil
}

func (c *HTTPClient) run(ctx context.Context, span trace.Span, operation string, body any) (json.RawMessage, error) {
	var started operationStarted
	if err := c.do(ctx, http.MethodPost, "/"+operation, body, &started); err != nil {
		return nil, err
	}
	if started.OperationID == "" {
		return nil, &OperationError{Operation: operation, Message: "node did not return an operation id"}
	}
	span.SetAttributes(attribute.String("dkg.operation_id", started.OperationID))

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	path := "/" + operation + "/" + url.PathEscape(started.OperationID)
	for attempt := 1; attempt <= c.cfg.MaxPollAttempts; attempt++ {
		var result operationResult
		if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
			return nil, err
		}

		switch strings.ToUpper(result.Status) {
		case statusCompleted:
			return result.Data, nil
		case statusFailed:
			var failure operationFailure
			if len(result.Data) > 0 {
				_ = json.Unmarshal(result.Data, &failure)
			}
			return nil, &OperationError{Operation: operation, Type: failure.ErrorType, Message: failure.ErrorMessage}
		}

		if attempt == c.cfg.MaxPollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	return nil, &ErrPollExhausted{Operation: operation, OperationID: started.OperationID, Attempts: c.cfg.MaxPollAttempts}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		operation := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
		var failure operationFailure
		_ = json.Unmarshal(raw, &failure)
		return &OperationError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Type:       failure.ErrorType,
			Message:    failure.ErrorMessage,
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
