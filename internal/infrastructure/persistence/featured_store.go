package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// featuredKey holds the curated product id list, in curation order
const featuredKey = "featured:products"

// addFeaturedScript appends an id unless it is already present or the
// list is at capacity. Runs server-side so concurrent admin toggles
// cannot push the list past the cap.
var addFeaturedScript = redis.NewScript(`
local pos = redis.call('LPOS', KEYS[1], ARGV[1])
if pos ~= false then
	return 0
end
if redis.call('LLEN', KEYS[1]) >= tonumber(ARGV[2]) then
	return -1
end
redis.call('RPUSH', KEYS[1], ARGV[1])
return 1
`)

// RedisFeaturedStore implements catalog.FeaturedStore on a Redis list.
// Suitable for deployments with more than one server instance.
type RedisFeaturedStore struct {
	client *redis.Client
}

// NewRedisFeaturedStore creates a store with an existing Redis client
func NewRedisFeaturedStore(client *redis.Client) *RedisFeaturedStore {
	return &RedisFeaturedStore{client: client}
}

// List returns the featured product ids in curation order
func (s *RedisFeaturedStore) List(ctx context.Context) ([]uuid.UUID, error) {
	raw, err := s.client.LRange(ctx, featuredKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read featured list: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			// A corrupt entry should not take the home page down
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Add appends a product to the featured list. Adding an already featured
// product is a no-op; adding past the cap fails.
func (s *RedisFeaturedStore) Add(ctx context.Context, productID uuid.UUID) error {
	result, err := addFeaturedScript.Run(ctx, s.client,
		[]string{featuredKey}, productID.String(), catalog.MaxFeatured).Int()
	if err != nil {
		return fmt.Errorf("failed to add featured product: %w", err)
	}
	if result < 0 {
		return shared.NewDomainError("FEATURED_LIMIT",
			fmt.Sprintf("At most %d products can be featured", catalog.MaxFeatured))
	}
	return nil
}

// Remove takes a product off the featured list
func (s *RedisFeaturedStore) Remove(ctx context.Context, productID uuid.UUID) error {
	if err := s.client.LRem(ctx, featuredKey, 0, productID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove featured product: %w", err)
	}
	return nil
}

// InMemoryFeaturedStore implements catalog.FeaturedStore in process
// memory. Used for local development and tests.
type InMemoryFeaturedStore struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

// NewInMemoryFeaturedStore creates a new in-memory featured store
func NewInMemoryFeaturedStore() *InMemoryFeaturedStore {
	return &InMemoryFeaturedStore{}
}

// List returns the featured product ids in curation order
func (s *InMemoryFeaturedStore) List(ctx context.Context) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uuid.UUID, len(s.ids))
	copy(out, s.ids)
	return out, nil
}

// Add appends a product to the featured list
func (s *InMemoryFeaturedStore) Add(ctx context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.ids {
		if id == productID {
			return nil
		}
	}
	if len(s.ids) >= catalog.MaxFeatured {
		return shared.NewDomainError("FEATURED_LIMIT",
			fmt.Sprintf("At most %d products can be featured", catalog.MaxFeatured))
	}
	s.ids = append(s.ids, productID)
	return nil
}

// Remove takes a product off the featured list
func (s *InMemoryFeaturedStore) Remove(ctx context.Context, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return nil
		}
	}
	return nil
}

var (
	_ catalog.FeaturedStore = (*RedisFeaturedStore)(nil)
	_ catalog.FeaturedStore = (*InMemoryFeaturedStore)(nil)
)
