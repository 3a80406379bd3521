package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(cfg *Config, clock *time.Time) *Limiter {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	l.now = func() time.Time { return *clock }
	return l
}

func TestBucket_AllowAndRefill(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0)

	for i := 0; i < 10; i++ {
		assert.True(t, b.allow(now), "request %d should be allowed", i+1)
	}
	assert.False(t, b.allow(now), "11th request should be denied")

	later := now.Add(1100 * time.Millisecond)
	assert.True(t, b.allow(later), "one token refills after a second")
	assert.False(t, b.allow(later))
}

func TestBucket_Status(t *testing.T) {
	now := time.Now()
	b := newBucket(10, 1.0)
	for i := 0; i < 5; i++ {
		b.allow(now)
	}

	remaining, reset := b.status(now)
	assert.Equal(t, 5, remaining)
	assert.WithinDuration(t, now.Add(5*time.Second), reset, 10*time.Millisecond)
}

func TestLimiter_Allow(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute}, &clock)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/v1/uploads/abc", "GET")
		require.True(t, allowed)
		assert.Equal(t, 3, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/v1/uploads/abc", "GET")
	assert.False(t, allowed)
	assert.Positive(t, info.RetryAfter)

	// other clients have their own bucket
	allowed, _ = l.Allow("10.0.0.2", "/v1/uploads/abc", "GET")
	assert.True(t, allowed)

	// the bucket refills with time
	clock = clock.Add(time.Minute)
	allowed, _ = l.Allow("10.0.0.1", "/v1/uploads/abc", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"1.1.1.1": true},
		Blacklist:     map[string]bool{"6.6.6.6": true},
	}, &clock)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("1.1.1.1", "/v1/jobs/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("6.6.6.6", "/v1/jobs/x", "GET")
	assert.False(t, allowed)

	disabled := testLimiter(&Config{Enabled: false}, &clock)
	allowed, info := disabled.Allow("6.6.6.6", "/v1/jobs/x", "GET")
	assert.True(t, allowed)
	assert.Zero(t, info.Limit)
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/v1/tailor/plan", Method: "POST", Limit: 2, Window: time.Minute, Burst: 2},
		},
	}, &clock)
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("c", "/v1/tailor/plan", "POST")
		require.True(t, allowed)
		assert.Equal(t, 2, info.Limit)
	}
	allowed, _ := l.Allow("c", "/v1/tailor/plan", "POST")
	assert.False(t, allowed)

	allowed, info := l.Allow("c", "/v1/tailor/plan/x", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthAndMetricsUnlimited(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour}, &clock)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
		allowed, _ = l.Allow("c", "/metrics", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour}, &clock)
	defer l.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := l.Allow("client", "/v1/jobs/1", "GET")
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestLimiter_CleanupBuckets(t *testing.T) {
	clock := time.Now()
	l := testLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute}, &clock)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/v1/jobs/1", "GET")
	}
	require.Len(t, l.buckets, 3)

	l.cleanupBuckets(clock.Add(time.Second))
	assert.Empty(t, l.buckets)
	assert.Empty(t, l.lastAccess)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	allowed, info := l.Allow("c", "/anything", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/v1/jobs/scrape", Method: "POST", Limit: 1},
		{Path: "/v1/uploads/", Method: "GET", Limit: 2},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{"/v1/jobs/scrape", "POST", 1, false},
		{"/v1/uploads/123", "GET", 2, false},
		{"/health", "GET", 0, false},
		{"/v1/jobs/scrape", "GET", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.True(t, cfg.Whitelist["2.2.2.2"])
	assert.NotEmpty(t, cfg.EndpointConfigs)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
