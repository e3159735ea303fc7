package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"enrolsight/pkg/platform/sentinel"
)

func TestRedis_UnreachableIsUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewRedis(client)

	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	err = c.Set(context.Background(), "k", []byte("v"), time.Minute)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)

	assert.NoError(t, c.Set(context.Background(), "k", []byte("v"), 0), "zero ttl skips the write")
}
