// Package petsapi implementa petstore.Remote contra el API REST de mascotas.
package petsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pet-adoption-catalog/internal/domain/pets"
	"pet-adoption-catalog/internal/platform/httpclient"
	"pet-adoption-catalog/internal/ports/petstore"
)

const collection = "/pets"

var ErrNotConfigured = errors.New("pets api client not configured")

type Client struct {
	http *httpclient.Client
}

var _ petstore.Remote = (*Client)(nil)

func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil
}

func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	var recs []pets.Record
	if err := c.http.DoJSON(ctx, http.MethodGet, collection, nil, &recs); err != nil {
		return nil, mapErr(err)
	}

	out := make([]pets.Pet, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Pet())
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (pets.Pet, error) {
	if !c.IsConfigured() {
		return pets.Pet{}, ErrNotConfigured
	}

	var rec pets.Record
	if err := c.http.DoJSON(ctx, http.MethodGet, itemPath(id), nil, &rec); err != nil {
		return pets.Pet{}, mapErr(err)
	}
	return rec.Pet(), nil
}

func (c *Client) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if !c.IsConfigured() {
		return pets.Pet{}, ErrNotConfigured
	}

	in := pets.RecordFrom(p)
	in.ID = ""

	var rec pets.Record
	if err := c.http.DoJSON(ctx, http.MethodPost, collection, in, &rec); err != nil {
		return pets.Pet{}, mapErr(err)
	}
	return rec.Pet(), nil
}

func (c *Client) Update(ctx context.Context, id string, p pets.Pet) (pets.Pet, error) {
	if !c.IsConfigured() {
		return pets.Pet{}, ErrNotConfigured
	}

	var rec pets.Record
	if err := c.http.DoJSON(ctx, http.MethodPut, itemPath(id), pets.RecordFrom(p), &rec); err != nil {
		return pets.Pet{}, mapErr(err)
	}
	if rec.ID == "" {
		rec.ID = pets.LooseString(id)
	}
	return rec.Pet(), nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	if err := c.http.DoJSON(ctx, http.MethodDelete, itemPath(id), nil, nil); err != nil {
		return mapErr(err)
	}
	return nil
}

func itemPath(id string) string {
	return collection + "/" + url.PathEscape(strings.TrimSpace(id))
}

// mapErr traduce status HTTP a los errores del puerto.
func mapErr(err error) error {
	code, ok := httpclient.StatusCode(err)
	if !ok {
		return err
	}
	switch code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", petstore.ErrNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", petstore.ErrRateLimited, err)
	default:
		return err
	}
}
