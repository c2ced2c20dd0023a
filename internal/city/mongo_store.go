package city

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore is a Store backed by one MongoDB collection.
type MongoStore struct {
	conn Connection
	cfg  Config
}

var _ Store = (*MongoStore)(nil)

// NewMongoStore returns a store that reaches the database through conn.
func NewMongoStore(conn Connection, cfg Config) *MongoStore {
	if cfg.Collection == "" {
		cfg.Collection = "cities"
	}
	return &MongoStore{conn: conn, cfg: cfg}
}

// collection bounds ctx by the operation timeout and resolves the collection.
// The returned cancel func must always be called.
func (s *MongoStore) collection(ctx context.Context) (*mongo.Collection, context.Context, context.CancelFunc, error) {
	cancel := context.CancelFunc(func() {})
	if s.cfg.OperationTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.cfg.OperationTimeout)
	}
	h, err := s.conn.Get(ctx)
	if err != nil {
		return nil, ctx, cancel, err
	}
	return h.DB.Collection(s.cfg.Collection), ctx, cancel, nil
}

func (s *MongoStore) List(ctx context.Context) ([]City, error) {
	coll, ctx, cancel, err := s.collection(ctx)
	defer cancel()
	if err != nil {
		return nil, storageErr("list", "", err)
	}

	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, storageErr("list", "", err)
	}

	cities := make([]City, 0)
	if err := cur.All(ctx, &cities); err != nil {
		return nil, storageErr("list", "", err)
	}
	return cities, nil
}

func (s *MongoStore) Insert(ctx context.Context, c *City) error {
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}

	coll, ctx, cancel, err := s.collection(ctx)
	defer cancel()
	if err != nil {
		return storageErr("insert", c.ID.Hex(), err)
	}

	if _, err := coll.InsertOne(ctx, c); err != nil {
		return storageErr("insert", c.ID.Hex(), err)
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, id bson.ObjectID) (City, error) {
	coll, ctx, cancel, err := s.collection(ctx)
	defer cancel()
	if err != nil {
		return City{}, storageErr("find", id.Hex(), err)
	}

	var c City
	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&c)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return City{}, ErrNotFound
	case err != nil:
		return City{}, storageErr("find", id.Hex(), err)
	}
	return c, nil
}

func (s *MongoStore) Delete(ctx context.Context, id bson.ObjectID) error {
	coll, ctx, cancel, err := s.collection(ctx)
	defer cancel()
	if err != nil {
		return storageErr("delete", id.Hex(), err)
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return storageErr("delete", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func storageErr(op, id string, err error) error {
	if id == "" {
		return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, id, err)
}
