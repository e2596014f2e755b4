package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/mathsheet/internal/telemetry"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter. Each call is traced as one span covering
// every attempt.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
	tracer trace.Tracer
}

// WithRetry wraps a Provider with retry logic. A non-positive MaxAttempts
// means a single attempt.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryProvider{
		inner:  p,
		config: cfg,
		logger: logger,
		tracer: otel.Tracer(telemetry.InstrumentationName),
	}
}

type retryClass int

const (
	retryNever retryClass = iota
	retryOnce
	retryTransient
)

// classify sorts provider errors. Cancellation, truncation and rejected
// requests are final; a schema violation gets one more try.
func classify(err error) retryClass {
	var (
		maxTok   *ErrMaxTokensExceeded
		rejected *ErrRequestRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &rejected):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryTransient
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	req = req.prepare(ctx)
	ctx, span := r.tracer.Start(ctx, "llm.generate", trace.WithAttributes(
		attribute.String("llm.model", r.inner.ModelID()),
		attribute.String("llm.purpose", req.Purpose),
	))
	defer span.End()

	resp, attempts, err := r.attempt(ctx, req)
	span.SetAttributes(attribute.Int("llm.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}

func (r *RetryProvider) attempt(ctx context.Context, req Request) (*Response, int, error) {
	var lastErr error
	invalidRetried := false

	for attempt := range r.config.MaxAttempts {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, attempt + 1, nil
		}
		lastErr = err

		switch classify(err) {
		case retryNever:
			return nil, attempt + 1, err
		case retryOnce:
			if invalidRetried {
				return nil, attempt + 1, err
			}
			invalidRetried = true
		}

		if attempt == r.config.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.logger.Debug("retrying LLM request",
			"model", r.inner.ModelID(),
			"purpose", req.Purpose,
			"attempt", attempt+1,
			"wait", wait,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return nil, attempt + 1, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, r.config.MaxAttempts, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff computes the wait before the next attempt. A rate limit's
// RetryAfter wins over the exponential schedule.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}
