// Package logger builds the service's *slog.Logger.
//
// New applies functional options (format, level, static attributes) and wraps
// the chosen slog handler with LogHandlerDecorator, which pulls request-scoped
// values such as the request id out of context.Context on every record.
//
// Attribute helpers (Error, Component, Event, CityID, ...) keep key names
// consistent across packages.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "cities"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "city created", logger.CityID(id.Hex()))
package logger
