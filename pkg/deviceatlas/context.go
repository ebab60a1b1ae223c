package deviceatlas

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
)

type deviceContextKey struct{}

// lazyDevice defers the lookup until the device is first read.
type lazyDevice struct {
	once    sync.Once
	resolve func() Device
	device  Device
}

func (l *lazyDevice) get() Device {
	l.once.Do(func() { l.device = l.resolve() })
	return l.device
}

// WithContext stores the resolved device in ctx.
func WithContext(ctx context.Context, d Device) context.Context {
	return context.WithValue(ctx, deviceContextKey{}, d)
}

// FromContext returns the device stored by WithContext or Middleware, or nil.
func FromContext(ctx context.Context) Device {
	if ctx == nil {
		return nil
	}
	switch v := ctx.Value(deviceContextKey{}).(type) {
	case Device:
		return v
	case *lazyDevice:
		return v.get()
	}
	return nil
}

// Middleware makes the request's Device available through FromContext.
// The User-Agent is resolved on first access, at most once per request.
func Middleware(a *Atlas) func(http.Handler) http.Handler {
	if a == nil {
		panic("deviceatlas: Middleware requires an Atlas")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua := r.UserAgent()
			lazy := &lazyDevice{resolve: func() Device { return a.Device(ua) }}
			ctx := context.WithValue(r.Context(), deviceContextKey{}, lazy)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerExtractor returns a logger context extractor adding the matched
// User-Agent prefix of the request's device under "ua_matched".
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		d := FromContext(ctx)
		if d == nil {
			return slog.Attr{}, false
		}
		return slog.String("ua_matched", d.Matched()), true
	}
}
