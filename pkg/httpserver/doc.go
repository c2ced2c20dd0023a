// Package httpserver runs an http.Handler with graceful shutdown, configurable
// timeouts, probe handlers and an access log.
//
// Run blocks until its context is cancelled, SIGINT or SIGTERM arrives, or
// Shutdown is called. In-flight requests are drained within the shutdown
// timeout, then stop hooks run, which is where connection pools are closed.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(cache.Close),
//	)
//	r.Use(httpserver.AccessLog(log))
//	r.Get("/health/live", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log, cache.Healthcheck()))
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// Config fields are read from HTTP_* environment variables.
package httpserver
