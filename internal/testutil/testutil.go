// Package testutil provides shared test helpers for the company console.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTestRedisAddr is dialled when TEST_REDIS_ADDR is unset.
	DefaultTestRedisAddr = "localhost:6379"

	redisDialTimeout = 2 * time.Second
	// DB 0 only holds reservation keys; token stores under test use 1..15.
	firstTestDB = 1
	lastTestDB  = 15
)

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// RedisTestAddr returns TEST_REDIS_ADDR, or DefaultTestRedisAddr.
func RedisTestAddr() string {
	if addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR")); addr != "" {
		return addr
	}
	return DefaultTestRedisAddr
}

// requireRedis turns a missing Redis into a failure instead of a skip.
func requireRedis() bool {
	switch strings.ToLower(os.Getenv("TEST_REQUIRE_REDIS")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// SetupTestRedis connects to the test Redis and returns a client on an empty
// database reserved for t. The test is skipped when Redis is unreachable,
// unless TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	addr := RedisTestAddr()
	if err := ping(addr, 0); err != nil {
		if requireRedis() {
			t.Fatalf("redis unavailable at %s: %v", addr, err)
		}
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: reserveDB(t, addr)})
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test redis db: %v", err)
	}
	return client
}

func ping(addr string, db int) error {
	c := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	defer func() { _ = c.Close() }()
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	return c.Ping(ctx).Err()
}

// reserveDB returns TEST_REDIS_DB when set. Otherwise it claims a free DB with
// a lock key in DB 0 so packages testing in parallel do not flush each other's
// data; the lock is released on cleanup.
func reserveDB(t testing.TB, addr string) int {
	t.Helper()
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			return db
		}
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr, DB: 0})
	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for db := firstTestDB; db <= lastTestDB; db++ {
		key := fmt.Sprintf("console:testutil:db:%d", db)
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		ok, err := meta.SetNX(ctx, key, owner, 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
			defer cancel()
			_ = meta.Del(ctx, key).Err()
			_ = meta.Close()
		})
		return db
	}
	_ = meta.Close()
	t.Logf("no free redis db; sharing DB %d", firstTestDB)
	return firstTestDB
}

// StringPtr returns a pointer to the given string value.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to the given float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}
