package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/calc/internal/expr"
	"github.com/GriffinCanCode/calc/internal/infrastructure/config"
	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/calc/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/calc/internal/shared/id"
	"github.com/GriffinCanCode/calc/internal/shared/types"
)

// Response is a successful remote evaluation
type Response = types.EvaluateResponse

// ErrUnavailable is returned when the server cannot be reached or keeps failing
var ErrUnavailable = errors.New("remote evaluator unavailable")

// RemoteError is a failure reported by the server. When the server names an
// evaluation kind the error unwraps to the matching expr sentinel, so
// expr.KindOf classifies it like a local failure.
type RemoteError struct {
	Status  int
	Kind    expr.Kind
	Message string
	Offset  *int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote: %s", e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Kind.Sentinel()
}

// Options configures a Client
type Options struct {
	Timeout    time.Duration
	Retries    int
	RetryWait  time.Duration
	Logger     *logging.Logger
	BreakerFor time.Duration
}

// OptionsFromConfig converts the application client settings
func OptionsFromConfig(cfg config.ClientConfig, logger *logging.Logger) Options {
	return Options{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Retries: cfg.Retries,
		Logger:  logger,
	}
}

// Client evaluates expressions against a calc server
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
	logger  *logging.Logger
}

// New creates a client for the server at baseURL
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", baseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 200 * time.Millisecond
	}
	if opts.BreakerFor <= 0 {
		opts.BreakerFor = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.Named("client")

	// Pooled transport; retries are driven by resty so they stay inside the breaker
	transport := retryablehttp.NewClient().HTTPClient.Transport

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTransport(transport).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		SetHeader("User-Agent", "calc-client/1.0").
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && shouldRetry(resp.StatusCode())
		})

	breaker := resilience.New("calc-remote", resilience.Settings{
		MaxRequests: 1,
		Timeout:     opts.BreakerFor,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			var remote *RemoteError
			return err == nil || (errors.As(err, &remote) && remote.Status < 500)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{resty: r, breaker: breaker, logger: logger}, nil
}

func shouldRetry(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// Evaluate sends one expression to POST /evaluate
func (c *Client) Evaluate(ctx context.Context, expression string, mode expr.Mode) (*Response, error) {
	body := types.EvaluateRequest{Expression: expression, Mode: mode.String()}

	resp, err := resilience.Call(ctx, c.breaker, func(ctx context.Context) (*Response, error) {
		var out Response
		var fail types.ErrorResponse

		r, err := c.request(ctx).
			SetBody(body).
			SetResult(&out).
			SetError(&fail).
			Post("/evaluate")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if r.IsError() {
			return nil, remoteError(r.StatusCode(), fail)
		}
		return &out, nil
	})

	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, err
}

// Ping checks GET /health
func (c *Client) Ping(ctx context.Context) error {
	return c.breaker.Execute(ctx, func(ctx context.Context) error {
		r, err := c.request(ctx).Get("/health")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if r.IsError() {
			return &RemoteError{Status: r.StatusCode(), Message: r.Status()}
		}
		return nil
	})
}

// BreakerState reports the circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

func (c *Client) request(ctx context.Context) *resty.Request {
	if tracing.RequestID(ctx) == "" {
		ctx = tracing.WithRequestID(ctx, id.NewRequestID().String())
	}
	headers := map[string]string{}
	tracing.InjectHeaders(ctx, headers)

	return c.resty.R().SetContext(ctx).SetHeaders(headers)
}

func remoteError(status int, body types.ErrorResponse) *RemoteError {
	msg := body.Error
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RemoteError{
		Status:  status,
		Kind:    expr.ParseKind(body.Kind),
		Message: msg,
		Offset:  body.Offset,
	}
}
