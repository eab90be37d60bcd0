package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/pkg/config"
)

// unreachableClient apunta a un puerto sin servidor: toda operación falla rápido.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisSummaryCache_ErrorsWhenUnreachable(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	c := NewRedisSummaryCache(client)
	ctx := context.Background()

	var dst map[string]int
	hit, err := c.Get(ctx, "dashboard:v1:k", &dst)
	require.Error(t, err)
	assert.False(t, hit)
	assert.Contains(t, err.Error(), "dashboard:v1:k")

	err = c.Set(ctx, "dashboard:v1:k", map[string]int{"a": 1}, time.Minute)
	require.Error(t, err)
}

func TestRedisSummaryCache_SetRejectsUnencodable(t *testing.T) {
	client := unreachableClient()
	defer client.Close()
	err := NewRedisSummaryCache(client).Set(context.Background(), "k", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "codificar")
}

func TestNewRedisClient_PingFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
