// Package config loads typed configuration from environment variables.
//
// Every package owns a Config struct tagged for github.com/caarlos0/env; the
// application entry point loads each of them with Load. A .env file in the
// working directory is honoured for local development.
//
// Structs implementing Validator are checked right after parsing, which makes
// unusable settings fail at startup instead of on the first request.
package config
