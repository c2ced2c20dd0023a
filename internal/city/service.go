package city

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dmitrymomot/cities/pkg/logger"
)

// Service implements the city operations on top of a Store.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService returns a Service. A nil logger discards output.
func NewService(store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, log: log.With(logger.Component("city"))}
}

// List returns every city. The slice is never nil.
func (s *Service) List(ctx context.Context) ([]City, error) {
	start := time.Now()
	cities, err := s.store.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to list cities",
			logger.Operation("list"),
			logger.Error(err),
			logger.Duration(time.Since(start)),
		)
		return nil, err
	}
	if cities == nil {
		cities = []City{}
	}
	return cities, nil
}

// Create validates in and stores it as a new city with a fresh id.
// The insert is not retried.
func (s *Service) Create(ctx context.Context, in CreateInput) (City, error) {
	if err := in.Validate(); err != nil {
		return City{}, err
	}

	c := City{
		ID:   bson.NewObjectID(),
		City: strings.TrimSpace(in.City),
	}
	if len(in.Extra) > 0 {
		c.Extra = maps.Clone(in.Extra)
	}

	if err := s.store.Insert(ctx, &c); err != nil {
		s.log.ErrorContext(ctx, "failed to create city",
			logger.Operation("insert"),
			logger.CityID(c.ID.Hex()),
			logger.Error(err),
		)
		return City{}, err
	}

	s.log.InfoContext(ctx, "city created",
		logger.Operation("insert"),
		logger.CityID(c.ID.Hex()),
	)
	return c, nil
}

// Delete removes the city with the given hex id and returns it.
//
// The record is looked up first so its name can be reported. The lookup and the
// delete are not atomic; if another request removes the record in between, the
// delete reports ErrNotFound rather than success.
func (s *Service) Delete(ctx context.Context, id string) (City, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return City{}, ErrNotFound
	}

	c, err := s.store.Find(ctx, oid)
	if err != nil {
		s.logFailure(ctx, "find", id, err)
		return City{}, err
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		s.logFailure(ctx, "delete", id, err)
		return City{}, err
	}

	s.log.InfoContext(ctx, "city removed",
		logger.Operation("delete"),
		logger.CityID(id),
	)
	return c, nil
}

func (s *Service) logFailure(ctx context.Context, op, id string, err error) {
	level := slog.LevelError
	if errors.Is(err, ErrNotFound) {
		level = slog.LevelInfo
	}
	s.log.Log(ctx, level, "city operation failed",
		logger.Operation(op),
		logger.CityID(id),
		logger.Error(err),
	)
}
