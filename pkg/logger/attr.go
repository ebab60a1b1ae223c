package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// UserAgent records the raw User-Agent under the key "user_agent".
func UserAgent(ua string) slog.Attr {
	return slog.String("user_agent", ua)
}

// Matched records the User-Agent prefix consumed by the device tree.
func Matched(prefix string) slog.Attr {
	return slog.String("matched", prefix)
}

// Dataset records the dataset location under the key "dataset".
func Dataset(path string) slog.Attr {
	return slog.String("dataset", path)
}

// Count records an integer counter under key.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
