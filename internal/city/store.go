package city

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	pkgmongo "github.com/dmitrymomot/cities/pkg/mongo"
)

// Store persists cities.
type Store interface {
	// List returns every city in storage order.
	List(ctx context.Context) ([]City, error)
	// Insert stores c, assigning an id first if c.ID is zero.
	Insert(ctx context.Context, c *City) error
	// Find returns ErrNotFound if no city has id.
	Find(ctx context.Context, id bson.ObjectID) (City, error)
	// Delete returns ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id bson.ObjectID) error
}

// Connection provides the shared database handle. *mongo.Cache implements it.
type Connection interface {
	Get(ctx context.Context) (*pkgmongo.Handle, error)
}
