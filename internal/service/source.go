// Package service bridges the query engine to asynchronous data sources:
// local and remote query execution behind one Source contract, the Loader
// driving fetch cycles for consumers, and catalog insight aggregation.
package service

import (
	"context"
	"fmt"

	"github.com/timemedia/adlibrary/internal/model"
	"github.com/timemedia/adlibrary/internal/query"
)

// AdProvider supplies the full candidate record set for local queries.
// Implemented by store.AdStore and fixture.Cache.
type AdProvider interface {
	ListAds(ctx context.Context) ([]model.Ad, error)
}

// Source executes one query cycle. Local and remote implementations
// produce the same Result shape, so consumers are mode-agnostic.
type Source interface {
	Query(ctx context.Context, st query.State) (*query.Result, error)
}

// LocalSource runs the query engine over an in-memory record set.
type LocalSource struct {
	provider AdProvider
}

// NewLocalSource creates a source backed by a record provider.
func NewLocalSource(p AdProvider) *LocalSource {
	return &LocalSource{provider: p}
}

// Query loads the candidate set and runs the engine over it.
func (s *LocalSource) Query(ctx context.Context, st query.State) (*query.Result, error) {
	ads, err := s.provider.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ads: %w", err)
	}
	res := query.Run(ads, st)
	return &res, nil
}

// RemoteSource delegates the whole pipeline to the read endpoint.
type RemoteSource struct {
	client *Client
}

// NewRemoteSource creates a source backed by a remote client.
func NewRemoteSource(c *Client) *RemoteSource {
	return &RemoteSource{client: c}
}

// Query executes the state against the remote endpoint.
func (s *RemoteSource) Query(ctx context.Context, st query.State) (*query.Result, error) {
	return s.client.QueryAds(ctx, st)
}
