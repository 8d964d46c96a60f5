// Package cache
package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type fakeFlusher struct {
	reply string
	err   error
}

func (f fakeFlusher) FlushDB(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult(f.reply, f.err)
}

func TestFlushDB(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, flushDB(ctx, fakeFlusher{reply: "OK"}))

	err := flushDB(ctx, fakeFlusher{reply: "QUEUED"})
	assert.EqualError(t, err, `unexpected FLUSHDB reply "QUEUED"`)

	connErr := errors.New("connection reset")
	assert.ErrorIs(t, flushDB(ctx, fakeFlusher{err: connErr}), connErr)
}
