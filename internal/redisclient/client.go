package redisclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
}

// NewClient creates a new traced Redis client for a single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client}
}

// startSpan opens a span for one Redis command
func startSpan(ctx context.Context, op, key string) (context.Context, trace.Span, time.Time) {
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+op,
		trace.WithAttributes(
			attribute.String("redis.key", key),
			attribute.String("redis.operation", op),
			attribute.String("redis.client", "barangay-portal-api"),
		),
	)
	return ctx, span, time.Now()
}

// finishSpan records the outcome of one Redis command
func finishSpan(span trace.Span, start time.Time, err error) {
	span.SetAttributes(
		attribute.Int64("redis.duration_ms", time.Since(start).Milliseconds()),
	)
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "success")
	}
	span.End()
}

// Get wraps Redis Get with tracing
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	ctx, span, start := startSpan(ctx, "get", key)
	cmd := c.cmdable.Get(ctx, key)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Set wraps Redis Set with tracing
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	ctx, span, start := startSpan(ctx, "set", key)
	cmd := c.cmdable.Set(ctx, key, value, expiration)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// SetNX wraps Redis SetNX with tracing
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	ctx, span, start := startSpan(ctx, "setnx", key)
	cmd := c.cmdable.SetNX(ctx, key, value, expiration)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Del wraps Redis Del with tracing
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	key := ""
	if len(keys) > 0 {
		key = keys[0]
	}
	ctx, span, start := startSpan(ctx, "del", key)
	cmd := c.cmdable.Del(ctx, keys...)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Keys wraps Redis Keys with tracing
func (c *Client) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	ctx, span, start := startSpan(ctx, "keys", pattern)
	cmd := c.cmdable.Keys(ctx, pattern)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Ping wraps Redis Ping with tracing
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	ctx, span, start := startSpan(ctx, "ping", "")
	cmd := c.cmdable.Ping(ctx)
	finishSpan(span, start, cmd.Err())
	return cmd
}

// Pipeline returns a raw Redis pipeline; callers batch Del operations for
// bulk cache invalidation
func (c *Client) Pipeline() redis.Pipeliner {
	return c.cmdable.Pipeline()
}
