package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignite/tuition-service/internal/config"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/ignite/tuition-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the three commands the cache uses.
type fakeRedis struct {
	redis.Cmdable
	data map[string][]byte
	ttls map[string]time.Duration
	down bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

var errRedisDown = errors.New("dial tcp: connection refused")

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.down {
		return redis.NewStringResult("", errRedisDown)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.down {
		return redis.NewStatusResult("", errRedisDown)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.down {
		return redis.NewIntResult(0, errRedisDown)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// countingStore records how often each read reaches it.
type countingStore struct {
	tuitions map[string]model.Tuition
	order    []string
	gets     int
	fresh    int
	lists    int
	exists   int
}

func newCountingStore() *countingStore {
	return &countingStore{tuitions: map[string]model.Tuition{}}
}

func (s *countingStore) Create(_ context.Context, t *model.Tuition) error {
	t.ID = "tid-" + t.Name
	s.tuitions[t.ID] = *t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *countingStore) GetByID(_ context.Context, id string) (*model.Tuition, error) {
	s.gets++
	t, ok := s.tuitions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *countingStore) GetByIDFresh(ctx context.Context, id string) (*model.Tuition, error) {
	s.fresh++
	t, ok := s.tuitions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s *countingStore) List(context.Context) ([]model.Tuition, error) {
	s.lists++
	out := []model.Tuition{}
	for _, id := range s.order {
		if t, ok := s.tuitions[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *countingStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.exists++
	_, ok := s.tuitions["tid-"+name]
	return ok, nil
}

func (s *countingStore) Delete(_ context.Context, id string) error {
	delete(s.tuitions, id)
	return nil
}

func TestTuitionCache_GetByIDReadThrough(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())
	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "Math"}))

	for i := 0; i < 3; i++ {
		got, err := c.GetByID(ctx, "tid-Math")
		require.NoError(t, err)
		assert.Equal(t, "Math", got.Name)
	}

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, time.Minute, rdb.ttls[config.CacheKey.TuitionKey("tid-Math")])
}

func TestTuitionCache_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())

	_, err := c.GetByID(ctx, "tid-missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = c.GetByID(ctx, "tid-missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, 2, store.gets)
	assert.Empty(t, rdb.data)
}

func TestTuitionCache_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())

	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "A"}))
	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = c.GetByID(ctx, "tid-A")
	require.NoError(t, err)

	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "B"}))
	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, store.lists)

	require.NoError(t, c.Delete(ctx, "tid-A"))
	_, err = c.GetByID(ctx, "tid-A")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	list, err = c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Name)
}

func TestTuitionCache_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	rdb.down = true
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())

	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "A"}))
	got, err := c.GetByID(ctx, "tid-A")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	require.NoError(t, c.Delete(ctx, "tid-A"))
}

func TestTuitionCache_CorruptEntryIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())
	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "A"}))
	rdb.data[config.CacheKey.TuitionKey("tid-A")] = []byte("{not json")

	got, err := c.GetByID(ctx, "tid-A")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, 1, store.gets)
}

func TestTuitionCache_ExistsByNameBypassesCache(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	c := NewTuitionCache(store, newFakeRedis(), time.Minute, zerolog.Nop())

	ok, err := c.ExistsByName(ctx, "A")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "A"}))
	ok, err = c.ExistsByName(ctx, "A")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, store.exists)
}

// deleteDuringRead deletes the tuition through the cache right after the
// store has answered a GetByID, before the cache writes the answer back.
type deleteDuringRead struct {
	*countingStore
	cache *TuitionCache
}

func (d *deleteDuringRead) GetByID(ctx context.Context, id string) (*model.Tuition, error) {
	t, err := d.countingStore.GetByID(ctx, id)
	if err == nil {
		_ = d.cache.Delete(ctx, id)
	}
	return t, err
}

func TestTuitionCache_FreshReadSeesDeleteRacingWriteBack(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	racing := &deleteDuringRead{countingStore: store}
	c := NewTuitionCache(racing, rdb, time.Minute, zerolog.Nop())
	racing.cache = c
	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "Math101"}))

	_, err := c.GetByID(ctx, "tid-Math101")
	require.NoError(t, err)
	require.Empty(t, store.tuitions)

	// The write-back left the deleted tuition in Redis.
	assert.Contains(t, rdb.data, config.CacheKey.TuitionKey("tid-Math101"))

	_, err = c.GetByIDFresh(ctx, "tid-Math101")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, store.fresh)
}

func TestTuitionCache_GetByIDFreshLeavesCacheAlone(t *testing.T) {
	ctx := context.Background()
	store, rdb := newCountingStore(), newFakeRedis()
	c := NewTuitionCache(store, rdb, time.Minute, zerolog.Nop())
	require.NoError(t, c.Create(ctx, &model.Tuition{Name: "Math"}))

	for i := 0; i < 2; i++ {
		got, err := c.GetByIDFresh(ctx, "tid-Math")
		require.NoError(t, err)
		assert.Equal(t, "Math", got.Name)
	}

	assert.Equal(t, 2, store.fresh)
	assert.NotContains(t, rdb.data, config.CacheKey.TuitionKey("tid-Math"))
}
