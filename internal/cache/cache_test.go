package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/Additional-Code/storefront/internal/config"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type record struct {
	ID   int64
	Name string
}

func TestJSONHelpersRoundTrip(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	key := Key("products", 7)

	_, err := GetJSON[record](ctx, store, key)
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, SetJSON(ctx, store, key, &record{ID: 7, Name: "Pen"}, time.Minute))

	got, err := GetJSON[record](ctx, store, key)
	require.NoError(t, err)
	assert.Equal(t, record{ID: 7, Name: "Pen"}, *got)
	assert.Equal(t, time.Minute, store.ttls[key])
	assert.Equal(t, "products:7", key)
}

func TestJSONHelpersTolerateNilStore(t *testing.T) {
	ctx := context.Background()

	_, err := GetJSON[record](ctx, nil, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, SetJSON(ctx, nil, "k", &record{}, 0))
}

func TestNewStoreNoop(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	store, err := NewStore(lc, config.Config{Cache: config.Cache{Driver: "noop"}}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), time.Second))
	_, err = store.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	_, err := NewStore(fxtest.NewLifecycle(t), config.Config{Cache: config.Cache{Driver: "memcached"}}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
