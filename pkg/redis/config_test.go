package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/trialbook_backend/config"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options(config.RedisConfig{Addr: "localhost:6379"})

	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, defaultPoolSize, opts.PoolSize)
	assert.Equal(t, defaultMinIdleConns, opts.MinIdleConns)
	assert.Equal(t, defaultDialTimeout, opts.DialTimeout)
	assert.Equal(t, defaultReadTimeout, opts.ReadTimeout)
	assert.Equal(t, defaultWriteTimeout, opts.WriteTimeout)
}

func TestOptions_Overrides(t *testing.T) {
	opts := Options(config.RedisConfig{
		Addr:                "redis:6380",
		DB:                  2,
		Password:            "secret",
		PoolSize:            50,
		MinIdleConns:        5,
		DialTimeoutSeconds:  1,
		ReadTimeoutSeconds:  7,
		WriteTimeoutSeconds: 9,
	})

	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 50, opts.PoolSize)
	assert.Equal(t, 5, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.DialTimeout)
	assert.Equal(t, 7*time.Second, opts.ReadTimeout)
	assert.Equal(t, 9*time.Second, opts.WriteTimeout)
}

func TestNew_EmptyAddr(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{})
	require.Error(t, err)
}
