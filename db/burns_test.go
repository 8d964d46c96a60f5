// Package db
package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"github.com/sobatoken/burn-backend/types"
)

// SetupTestMGO starts a throwaway mongo container and returns a client with
// the container URL. The test is skipped when docker is not reachable.
func SetupTestMGO(t *testing.T) (*mongoDB, string) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("cannot start mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = pool.Purge(res)
	})

	url := fmt.Sprintf("mongodb://localhost:%s", res.GetPort("27017/tcp"))
	var mgo *mongoDB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var err error
		mgo, err = newMongoDB(testConfig(url, false))
		if err != nil {
			return err
		}
		return mgo.Ping(context.Background())
	})
	assert.NilError(t, err)
	t.Cleanup(func() {
		_ = mgo.Close(context.Background())
	})
	return mgo, url
}

func testConfig(url string, flush bool) Config {
	return Config{
		DbAdapter: MGO,
		DbName:    "soba_test",
		URL:       url,
		MinConn:   1,
		MaxConn:   4,
		FlushDB:   flush,
		Logger:    zap.NewNop(),
	}
}

func TestMgo_UpsertBurns(t *testing.T) {
	mgo, _ := SetupTestMGO(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	burns := []*types.BurnRecord{
		{TxHash: "tx-1", BurnAmount: 100, Timestamp: base, UpdatedAt: 1},
		{TxHash: "tx-2", BurnAmount: 200, Timestamp: base.Add(time.Minute), UpdatedAt: 1},
	}
	assert.NilError(t, mgo.UpsertBurns(ctx, burns))

	// second sighting of tx-1 refreshes the amount but keeps the original timestamp
	assert.NilError(t, mgo.UpsertBurns(ctx, []*types.BurnRecord{
		{TxHash: "tx-1", BurnAmount: 150, Timestamp: base.Add(time.Hour), UpdatedAt: 2},
	}))

	total, err := mgo.BurnsCount(ctx)
	assert.NilError(t, err)
	assert.Equal(t, int64(2), total)

	stored, err := mgo.Burns(ctx, 10)
	assert.NilError(t, err)
	assert.Equal(t, 2, len(stored))
	assert.Equal(t, "tx-2", stored[0].TxHash)
	assert.Equal(t, "tx-1", stored[1].TxHash)
	assert.Equal(t, uint64(150), stored[1].BurnAmount)
	assert.Equal(t, int64(2), stored[1].UpdatedAt)
	assert.Assert(t, stored[1].Timestamp.Equal(base))
}

func TestMgo_BurnsLimit(t *testing.T) {
	mgo, _ := SetupTestMGO(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	var burns []*types.BurnRecord
	for i := 0; i < 5; i++ {
		burns = append(burns, &types.BurnRecord{TxHash: fmt.Sprintf("tx-%d", i), BurnAmount: uint64(i), Timestamp: base.Add(time.Duration(i) * time.Second)})
	}
	assert.NilError(t, mgo.UpsertBurns(ctx, burns))
	assert.NilError(t, mgo.UpsertBurns(ctx, nil))

	stored, err := mgo.Burns(ctx, 3)
	assert.NilError(t, err)
	assert.Equal(t, 3, len(stored))
	assert.Equal(t, "tx-4", stored[0].TxHash)

	stored, err = mgo.Burns(ctx, 0)
	assert.NilError(t, err)
	assert.Equal(t, 5, len(stored))
}

func TestMgo_FlushDB(t *testing.T) {
	mgo, url := SetupTestMGO(t)
	ctx := context.Background()
	assert.NilError(t, mgo.UpsertBurns(ctx, []*types.BurnRecord{{TxHash: "tx-1", BurnAmount: 1}}))

	kept, err := newMongoDB(testConfig(url, false))
	assert.NilError(t, err)
	defer kept.Close(ctx)
	total, err := kept.BurnsCount(ctx)
	assert.NilError(t, err)
	assert.Equal(t, int64(1), total)

	flushed, err := newMongoDB(testConfig(url, true))
	assert.NilError(t, err)
	defer flushed.Close(ctx)
	total, err = flushed.BurnsCount(ctx)
	assert.NilError(t, err)
	assert.Equal(t, int64(0), total)
}
