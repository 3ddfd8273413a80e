package cache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sabadesa/sabadesa-be/internal/testutil"
)

// fakeRedis answers GET, SET and DEL from a map inside the client's hook
// chain, so commands never reach the network.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	keys []string
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			key := args[1].(string)
			f.keys = append(f.keys, key)
			v, ok := f.data[key]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			key := args[1].(string)
			f.keys = append(f.keys, key)
			f.data[key] = string(args[2].([]byte))
			c.SetVal("OK")
		case *redis.IntCmd:
			var n int64
			for _, a := range args[1:] {
				key := a.(string)
				f.keys = append(f.keys, key)
				if _, ok := f.data[key]; ok {
					delete(f.data, key)
					n++
				}
			}
			c.SetVal(n)
		default:
			return errors.New("unexpected command " + cmd.Name())
		}
		return nil
	}
}

func newFakeRedis(t *testing.T) (*Redis, *fakeRedis) {
	t.Helper()
	fake := &fakeRedis{data: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(fake)
	t.Cleanup(func() { client.Close() })
	return &Redis{client: client}, fake
}

func TestRedis_MissAndPrefix(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeRedis(t)

	var got sample
	if err := c.Get(ctx, KeyHeatmap, &got); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}

	if err := c.Set(ctx, KeyHeatmap, sample{Name: "a", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if raw := fake.data[keyPrefix+KeyHeatmap]; raw != `{"name":"a","count":3}` {
		t.Errorf("unexpected stored value %q", raw)
	}
	if err := c.Get(ctx, KeyHeatmap, &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != (sample{Name: "a", Count: 3}) {
		t.Errorf("unexpected value %+v", got)
	}

	if err := c.Delete(ctx, AnalyticsKeys...); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := c.Get(ctx, KeyHeatmap, &got); !errors.Is(err, ErrMiss) {
		t.Errorf("expected ErrMiss after Delete, got %v", err)
	}

	for _, key := range fake.keys {
		if len(key) < len(keyPrefix) || key[:len(keyPrefix)] != keyPrefix {
			t.Errorf("key %q sent without prefix", key)
		}
	}
}

func TestRedis_CorruptValue(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeRedis(t)
	fake.data[keyPrefix+KeyDashboard] = "not json"

	var got sample
	err := c.Get(ctx, KeyDashboard, &got)
	if err == nil || errors.Is(err, ErrMiss) {
		t.Errorf("expected a decode error, got %v", err)
	}
}

func TestRedis_Live(t *testing.T) {
	redisURL := testutil.RequireEnv(t, "REDIS_URL")
	ctx := context.Background()

	c, err := NewRedis(ctx, redisURL)
	if err != nil {
		t.Fatalf("NewRedis failed: %v", err)
	}
	defer c.Close()

	key := "test:" + strconv.FormatInt(time.Now().UnixNano(), 10)
	t.Cleanup(func() { c.Delete(context.Background(), key) })

	var got sample
	if err := c.Get(ctx, key, &got); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
	if err := c.Set(ctx, key, sample{Name: "live", Count: 1}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Get(ctx, key, &got); err != nil || got.Name != "live" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if n, err := c.client.Exists(ctx, keyPrefix+key).Result(); err != nil || n != 1 {
		t.Errorf("expected prefixed key to exist, got %d, %v", n, err)
	}
}
