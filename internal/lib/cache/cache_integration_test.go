//go:build integration

package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var redisAddr string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		panic(err)
	}
	redisAddr = fmt.Sprintf("%s:%s", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newCache(t *testing.T) *Cache {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, "test-"+t.Name())
}

func TestCache_JSONAndVersion(t *testing.T) {
	ctx := context.Background()
	c := newCache(t)

	var got map[string]int
	hit, err := c.GetJSON(ctx, "board", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "board", map[string]int{"a": 1}, time.Minute))
	hit, err = c.GetJSON(ctx, "board", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, got["a"])

	v, err := c.Version(ctx, "leaderboard")
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = c.Bump(ctx, "leaderboard")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestCache_PubSub(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := newCache(t)

	msgs := c.Subscribe(ctx, "updates")
	// Subscribe is asynchronous on the server side.
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, c.Publish(ctx, "updates", map[string]string{"type": "score"}))

	select {
	case b := <-msgs:
		assert.JSONEq(t, `{"type":"score"}`, string(b))
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
