package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// resource implements the CRUD endpoints shared by every REST resource:
// T is the response entity, R the create/update payload.
type resource[T any, R any] struct {
	c    *Client
	name string
}

func activeQuery(soloActivas bool) url.Values {
	return url.Values{"soloActivas": {strconv.FormatBool(soloActivas)}}
}

func idSegment(id int64) string { return strconv.FormatInt(id, 10) }

// List returns the whole collection, or only active entities.
func (r resource[T, R]) List(ctx context.Context, soloActivas bool) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.c.endpoint(activeQuery(soloActivas), r.name), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single entity by identifier.
func (r resource[T, R]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.c.endpoint(nil, r.name, idSegment(id)), nil, &out)
	return out, err
}

// Create posts a new entity and returns it as stored by the server.
func (r resource[T, R]) Create(ctx context.Context, req R) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.c.endpoint(nil, r.name), req, &out)
	return out, err
}

// Update replaces the entity identified by id.
func (r resource[T, R]) Update(ctx context.Context, id int64, req R) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.c.endpoint(nil, r.name, idSegment(id)), req, &out)
	return out, err
}

// Delete removes the entity identified by id.
func (r resource[T, R]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, r.c.endpoint(nil, r.name, idSegment(id)), nil, nil)
}

// SearchByName looks an entity up by name; matching is server-defined.
func (r resource[T, R]) SearchByName(ctx context.Context, name string) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.c.endpoint(nil, r.name, "buscar", "nombre", name), nil, &out)
	return out, err
}
