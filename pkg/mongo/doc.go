// Package mongo provides the process-wide MongoDB connection used by the service.
//
// Short-lived invocations that share one long-lived process must not open a
// connection each. Cache collapses concurrent cold starts into a single
// connection attempt and hands the resulting Handle to every later caller.
// Failed attempts are not remembered, so a transient outage does not poison
// the process.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	cache := mongo.NewCache(cfg, mongo.WithLogger(log))
//	defer cache.Close(context.Background())
//
//	h, err := cache.Get(ctx)
//	if errors.Is(err, mongo.ErrConnection) {
//		// retry later; the next Get dials again
//	}
//	coll := h.DB.Collection("cities")
//
// # Configuration
//
// Config is read from the environment (MONGODB_URI, MONGODB_DB and pool
// settings). Both the URI and the database name fall back to local
// development defaults.
//
// # See Also
//
// Documentation for the official driver: https://pkg.go.dev/go.mongodb.org/mongo-driver/v2.
package mongo
