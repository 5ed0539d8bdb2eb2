package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger stored in ctx. Without one, zerolog hands
// back its disabled logger, so callers never need a nil check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

func withField(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}

func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

func WithTabID(ctx context.Context, tabID string) context.Context {
	return withField(ctx, "tab_id", tabID)
}

func WithDomain(ctx context.Context, domain string) context.Context {
	return withField(ctx, "domain", domain)
}

func WithURL(ctx context.Context, url string) context.Context {
	return withField(ctx, "url", url)
}
