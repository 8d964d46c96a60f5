// Package db
package db

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

type Adapter string

const (
	MGO Adapter = "mgo"
)

type Config struct {
	DbAdapter Adapter
	DbName    string
	URL       string
	MinConn   int
	MaxConn   int
	FlushDB   bool

	Logger *zap.Logger
}

type IBurns interface {
	UpsertBurns(ctx context.Context, burns []*types.BurnRecord) error
	Burns(ctx context.Context, limit int64) ([]*types.BurnRecord, error)
	BurnsCount(ctx context.Context) (int64, error)
}

type Client interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	dropDatabase(ctx context.Context) error

	IBurns
}

func NewClient(cfg Config) (Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	switch cfg.DbAdapter {
	case MGO, "":
		return newMongoDB(cfg)
	default:
		return nil, errors.New("invalid db config")
	}
}
