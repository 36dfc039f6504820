package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rmdhfz/minimart/internal/log"
	storeResponse "github.com/rmdhfz/minimart/store/pkg/response"
)

type StoreLister interface {
	FindStores(c context.Context) ([]storeResponse.Store, error)
}

// Resolver maps store ids to store records. It fetches the full store list
// once on first use and keeps it for the life of the process; the store set
// is small and staleness only affects displayed names, never grouping
// correctness. A failed fetch is retried on the next resolution.
type Resolver struct {
	mu      sync.RWMutex
	client  StoreLister
	stores  map[uuid.UUID]storeResponse.Store
	fetched bool
}

func NewResolver(client StoreLister) *Resolver {
	return &Resolver{client: client, stores: map[uuid.UUID]storeResponse.Store{}}
}

// Index returns the id -> store map, fetching the store list if it has not
// been loaded yet. On fetch failure the cached (possibly empty) map is
// returned; unresolved stores then fall into the unknown bucket.
func (r *Resolver) Index(c context.Context) map[uuid.UUID]storeResponse.Store {
	r.mu.RLock()
	if r.fetched {
		defer r.mu.RUnlock()
		return r.stores
	}
	r.mu.RUnlock()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Resolver Index").
		Str(log.KeyProcess, "fetching store list").
		Logger()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetched {
		return r.stores
	}

	logger.Info().Msg("fetching store list")
	stores, err := r.client.FindStores(c)
	if err != nil {
		err = fmt.Errorf("failed fetching store list with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return r.stores
	}
	index := make(map[uuid.UUID]storeResponse.Store, len(stores))
	for _, store := range stores {
		index[store.ID] = store
	}
	r.stores = index
	r.fetched = true
	logger.Info().Msgf("fetched %d stores", len(stores))

	return r.stores
}

// Resolve returns the store for the id, or nil when the id is unknown or the
// store list could not be fetched.
func (r *Resolver) Resolve(c context.Context, id uuid.UUID) *storeResponse.Store {
	index := r.Index(c)
	store, ok := index[id]
	if !ok {
		return nil
	}
	return &store
}
