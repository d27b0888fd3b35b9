// Package cache memoizes loader results in a key-value store.
//
// A wrapped loader derives its key from the call arguments, returns cached results on hits and
// stores fresh ones on misses. Cached absence (None) is distinguished from a miss. Store failures
// never reach the caller: they are logged and the loader is called instead.
package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Results reported to the Recorder.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultBypass = "bypass"
)

var errNilLoader = errors.New("cache: nil loader")

// Recorder receives the outcome of every cached call.
type Recorder interface {
	CacheResult(result string)
}

type nopRecorder struct{}

func (nopRecorder) CacheResult(string) {}

// Cache is the handle shared by wrapped loaders.
type Cache struct {
	store    Store
	logger   *zap.Logger
	recorder Recorder
}

// Setting customizes a Cache.
type Setting func(*Cache)

func WithLogger(logger *zap.Logger) Setting {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithRecorder(r Recorder) Setting {
	return func(c *Cache) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New creates a cache over store. A nil store behaves like NopStore.
func New(store Store, settings ...Setting) *Cache {
	if store == nil {
		store = NopStore{}
	}
	c := &Cache{store: store, logger: zap.NewNop(), recorder: nopRecorder{}}
	for _, apply := range settings {
		apply(c)
	}
	return c
}

// Enabled reports whether results are stored at all.
func (c *Cache) Enabled() bool {
	switch c.store.(type) {
	case NopStore, *NopStore:
		return false
	}
	return true
}

func (c *Cache) read(ctx context.Context, key string) ([]byte, bool) {
	data, found, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return data, found
}

func (c *Cache) write(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Loader computes the result for args. Returning None caches the absence.
type Loader[A, R any] func(ctx context.Context, args A) (Option[R], error)

// CallOption adjusts a single cached call.
type CallOption func(*callOptions)

type callOptions struct {
	force bool
}

// Force skips the cache lookup and overwrites the stored value with a fresh result.
func Force() CallOption {
	return func(o *callOptions) { o.force = true }
}

// Func is a loader wrapped with caching.
type Func[A, R any] struct {
	cache *Cache
	key   KeyFunc[A]
	ttl   time.Duration
	load  Loader[A, R]
}

// Wrap binds load to c. Keys come from key; a nil key disables caching for every call.
func Wrap[A, R any](c *Cache, key KeyFunc[A], ttl time.Duration, load Loader[A, R]) *Func[A, R] {
	if c == nil {
		c = New(nil)
	}
	return &Func[A, R]{cache: c, key: key, ttl: ttl, load: load}
}

// Call returns the cached result for args or loads and stores it.
func (f *Func[A, R]) Call(ctx context.Context, args A, opts ...CallOption) (Option[R], error) {
	return f.call(ctx, f.baseKey(args), args, opts)
}

func (f *Func[A, R]) baseKey(args A) string {
	if f.key == nil {
		return ""
	}
	return f.key(args)
}

func (f *Func[A, R]) call(ctx context.Context, rawKey string, args A, opts []CallOption) (Option[R], error) {
	if f.load == nil {
		return None[R](), errNilLoader
	}

	var o callOptions
	for _, apply := range opts {
		apply(&o)
	}

	key := normalizeKey(rawKey)
	if key == "" || !f.cache.Enabled() {
		f.cache.recorder.CacheResult(ResultBypass)
		return f.load(ctx, args)
	}

	if !o.force {
		if v, ok := f.lookup(ctx, key); ok {
			f.cache.recorder.CacheResult(ResultHit)
			return v, nil
		}
	}

	f.cache.recorder.CacheResult(ResultMiss)
	v, err := f.load(ctx, args)
	if err != nil {
		return None[R](), err
	}

	data, err := encode(v)
	if err != nil {
		f.cache.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return v, nil
	}
	f.cache.write(ctx, key, data, f.ttl)
	return v, nil
}

func (f *Func[A, R]) lookup(ctx context.Context, key string) (Option[R], bool) {
	data, found := f.cache.read(ctx, key)
	if !found {
		return None[R](), false
	}
	v, err := decode[R](data)
	if err == nil {
		return v, true
	}
	if raw, ok := rawValue[R](data); ok {
		return raw, true
	}
	f.cache.logger.Warn("undecodable cache entry, reloading", zap.String("key", key), zap.Error(err))
	return None[R](), false
}

// QueryFunc is a wrapped loader whose key also carries the raw request query string.
type QueryFunc[A, R any] struct {
	fn *Func[A, R]
}

// WrapByQuery is like Wrap but Call mixes the raw query into the key.
func WrapByQuery[A, R any](c *Cache, key KeyFunc[A], ttl time.Duration, load Loader[A, R]) *QueryFunc[A, R] {
	return &QueryFunc[A, R]{fn: Wrap(c, key, ttl, load)}
}

func (q *QueryFunc[A, R]) Call(ctx context.Context, args A, rawQuery string, opts ...CallOption) (Option[R], error) {
	key := q.fn.baseKey(args)
	if key != "" {
		key += ":" + rawQuery
	}
	return q.fn.call(ctx, key, args, opts)
}
