// Package logger provides a context-aware wrapper around Go's slog package
// with functional options, attribute helpers and injection of values stored
// in context.Context.
//
// New builds a slog.Handler (text or JSON) and wraps it with
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// for every record. Request-scoped values such as the request ID or the
// matched User-Agent prefix end up in the log without being passed around.
//
// # Usage
//
//	import "github.com/dmitrymomot/deviceatlas/pkg/logger"
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "deviceatlas"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "device resolved",
//	    logger.UserAgent(ua),
//	    logger.Matched(d.Matched()),
//	)
//
// NewFromConfig does the same from a Config populated by pkg/config:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// # Error Handling
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally:
//
//	log.Info("dataset loaded", logger.Error(err))
package logger
