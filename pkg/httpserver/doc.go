// Package httpserver runs the device lookup HTTP service with graceful
// shutdown on context cancellation or SIGINT/SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
