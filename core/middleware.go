package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// CallFunc executes a call.
type CallFunc func(ctx context.Context, call *Call) (*Result, error)

// Middleware wraps a CallFunc to add behavior before and/or after execution.
type Middleware func(next CallFunc) CallFunc

// Chain combines middleware into one. The first middleware is outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next CallFunc) CallFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// LoggingMiddleware logs the outcome of every call.
// Inputs, outputs and tokens are never logged.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, call *Call) (*Result, error) {
			start := time.Now()
			logger.Debug("call start",
				zap.String("func", call.Func),
				zap.Int("files", len(call.Files)),
				zap.Bool("authenticated", call.Meta != nil),
			)

			result, err := next(ctx, call)

			duration := time.Since(start)
			if err != nil {
				fields := []zap.Field{
					zap.String("func", call.Func),
					zap.Duration("duration", duration),
					zap.Error(err),
				}
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					fields = append(fields, zap.Stringer("kind", apiErr.Kind))
					if apiErr.OperationID != "" {
						fields = append(fields, zap.String("operation_id", apiErr.OperationID))
					}
				}
				logger.Warn("call error", fields...)
				return nil, err
			}

			logger.Debug("call success",
				zap.String("func", call.Func),
				zap.Duration("duration", duration),
				zap.Int("downloads", len(result.Downloads)),
			)
			return result, nil
		}
	}
}

// CacheMiddleware serves repeated calls from cache.
// Only functions with a TTL in the cache and calls without files are cached.
func CacheMiddleware(cache *ResponseCache) Middleware {
	return func(next CallFunc) CallFunc {
		return func(ctx context.Context, call *Call) (*Result, error) {
			if !cache.Cacheable(call) {
				return next(ctx, call)
			}

			key, err := CacheKey(call.Func, call.Input)
			if err != nil {
				return next(ctx, call)
			}

			if cached, ok := cache.Get(key); ok {
				return cached, nil
			}

			result, err := next(ctx, call)
			if err != nil {
				return nil, err
			}

			cache.Set(key, call.Func, result)
			return result, nil
		}
	}
}
