// Package main runs the cities API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/cities/internal/app"
	"github.com/dmitrymomot/cities/internal/city"
	"github.com/dmitrymomot/cities/internal/location"
	"github.com/dmitrymomot/cities/pkg/config"
	"github.com/dmitrymomot/cities/pkg/httpserver"
	"github.com/dmitrymomot/cities/pkg/logger"
	"github.com/dmitrymomot/cities/pkg/mongo"
	"github.com/dmitrymomot/cities/pkg/ratelimiter"
	"github.com/dmitrymomot/cities/pkg/redis"
	"github.com/dmitrymomot/cities/pkg/requestid"
	"github.com/dmitrymomot/cities/pkg/verify"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"cities"`
	LogLevel string `env:"LOG_LEVEL"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg    appConfig
		httpCfg   httpserver.Config
		mongoCfg  mongo.Config
		cityCfg   city.Config
		limitCfg  ratelimiter.Config
		redisCfg  redis.Config
		verifyCfg verify.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&httpCfg),
		config.Load(&mongoCfg),
		config.Load(&cityCfg),
		config.Load(&limitCfg),
		config.Load(&redisCfg),
		config.Load(&verifyCfg),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithLevelName(appCfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	// The connection itself is opened lazily by the first request.
	cache := mongo.NewCache(mongoCfg, mongo.WithLogger(log))
	stopHooks := []httpserver.Option{httpserver.WithStopHook(cache.Close)}
	readiness := []httpserver.CheckFunc{cache.Healthcheck()}

	var store ratelimiter.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		store = ratelimiter.NewRedisStore(client)
		readiness = append(readiness, redis.Healthcheck(client))
		stopHooks = append(stopHooks, httpserver.WithStopHook(func(context.Context) error {
			return client.Close()
		}))
	} else {
		mem := ratelimiter.NewMemoryStore()
		store = mem
		stopHooks = append(stopHooks, httpserver.WithStopHook(func(context.Context) error {
			mem.Close()
			return nil
		}))
	}
	bucket, err := ratelimiter.NewBucket(store, limitCfg)
	if err != nil {
		return err
	}
	limit := ratelimiter.Middleware(bucket,
		ratelimiter.Composite(ratelimiter.Static("cities"), ratelimiter.IP),
		ratelimiter.WithLogger(log),
	)

	cities := city.NewResource(
		city.NewService(city.NewMongoStore(cache, cityCfg), log),
		log,
		city.WithWriteMiddleware(limit),
	)

	opts := app.RouterOptions{
		Logger:         log,
		RequestTimeout: httpCfg.RequestTimeout,
		Cities:         cities,
		Readiness:      readiness,
	}
	if verifyCfg.Enabled() {
		client, err := verify.New(verifyCfg, verify.WithLogger(log))
		if err != nil {
			return err
		}
		opts.Location = location.NewResource(client, log)
	}

	srv := httpserver.NewFromConfig(httpCfg, append(stopHooks, httpserver.WithLogger(log))...)

	start := time.Now()
	err = srv.Run(ctx, app.Router(opts))
	log.Info("server stopped", logger.Duration(time.Since(start)))
	return err
}
