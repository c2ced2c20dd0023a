// Package city implements the city resource: list, create and delete of
// free-form city records stored in MongoDB.
//
// The layers are:
//
//   - Store, with MongoStore reaching the collection through a shared
//     connection (usually a *mongo.Cache from pkg/mongo);
//   - Service, which validates input, assigns ids and logs failures;
//   - Resource, which exposes the Service over HTTP.
//
// Wiring:
//
//	cache := mongo.NewCache(mongoCfg, mongo.WithLogger(log))
//	svc := city.NewService(city.NewMongoStore(cache, cityCfg), log)
//	r.Mount("/api/cities", city.NewResource(svc, log).Handle())
//
// Storage failures wrap ErrStorage and are reported to clients as a generic
// server error. Unknown or malformed ids yield ErrNotFound.
package city
