// Package redis connects to an optional Redis server used to share state
// between instances, such as rate limit buckets.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		if err != nil {
//			return err
//		}
//		defer client.Close()
//		checks = append(checks, redis.Healthcheck(client))
//	}
package redis
