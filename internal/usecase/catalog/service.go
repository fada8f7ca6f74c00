// Package catalog assembles the list of searchable codes.
//
// Probing every code against the index is the expensive part, so the
// assembled listing is kept in the key-value store for a configurable
// TTL and concurrent rebuilds are coalesced into a single probe pass.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/attorney-tools/codesearch/internal/db"
	"github.com/attorney-tools/codesearch/internal/domain"
	"github.com/attorney-tools/codesearch/internal/metrics"
)

const listKeySuffix = "list"

// Service serves the code listing with a store-backed cache in front
// of the descriptor files and the index probes.
type Service struct {
	source DescriptorSource
	prober Prober
	cache  Cache
	key    string
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

func New(source DescriptorSource, prober Prober, cache Cache, keyPrefix string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		prober: prober,
		cache:  cache,
		key:    keyPrefix + listKeySuffix,
		ttl:    ttl,
		logger: logger,
	}
}

// ListCodes returns every configured code with its searchable flag.
// A cached listing is returned as stored. On a miss the listing is
// rebuilt, probing the index once per code, and written back with the
// configured TTL. Cache failures degrade to a direct rebuild.
func (s *Service) ListCodes(ctx context.Context) ([]domain.CodeDescriptor, error) {
	if data, err := s.cache.Get(ctx, s.key); err == nil {
		var cached []domain.CodeDescriptor
		uerr := json.Unmarshal(data, &cached)
		if uerr == nil {
			return cached, nil
		}
		s.logger.Warn("discarding malformed cached code listing", zap.Error(uerr))
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		s.logger.Warn("code listing cache read failed, rebuilding", zap.Error(err))
	}

	v, err, _ := s.group.Do(s.key, func() (any, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.CodeDescriptor), nil
}

func (s *Service) rebuild(ctx context.Context) ([]domain.CodeDescriptor, error) {
	descriptors, err := s.source.Descriptors()
	if err != nil {
		return nil, err
	}

	for i := range descriptors {
		metrics.CatalogProbesTotal.Inc()
		live, perr := s.prober.Probe(ctx, descriptors[i].Code)
		if perr != nil {
			s.logger.Warn("index probe failed, marking code unsearchable",
				zap.String("code", descriptors[i].Code), zap.Error(perr))
			live = false
		}
		if live {
			descriptors[i].Searchable = domain.SearchableYes
		} else {
			descriptors[i].Searchable = domain.SearchableNo
		}
	}

	if data, merr := json.Marshal(descriptors); merr == nil {
		if serr := s.cache.SetWithTTL(ctx, s.key, data, s.ttl); serr != nil {
			s.logger.Warn("code listing cache write failed", zap.Error(serr))
		}
	}
	return descriptors, nil
}
