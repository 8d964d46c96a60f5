/*
 *  Copyright 2018 KardiaChain
 *  This file is part of the go-kardia library.
 *
 *  The go-kardia library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The go-kardia library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 *  GNU Lesser General Public License for more details.
 *
 *  You should have received a copy of the GNU Lesser General Public License
 *  along with the go-kardia library. If not, see <http://www.gnu.org/licenses/>.
 */
// Package db
package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	cBurns = "Burns"
)

const connectTimeout = 10 * time.Second

type mongoDB struct {
	logger  *zap.Logger
	client  *mongo.Client
	wrapper *SobaMgo
}

func newMongoDB(cfg Config) (*mongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	dbClient := &mongoDB{
		logger:  cfg.Logger.With(zap.String("db", cfg.DbName)),
		wrapper: &SobaMgo{},
	}
	mgoOptions := options.Client()
	mgoOptions.ApplyURI(cfg.URL)
	if cfg.MinConn > 0 {
		mgoOptions.SetMinPoolSize(uint64(cfg.MinConn))
	}
	if cfg.MaxConn > 0 {
		mgoOptions.SetMaxPoolSize(uint64(cfg.MaxConn))
	}
	mgoClient, err := mongo.Connect(ctx, mgoOptions)
	if err != nil {
		return nil, err
	}
	dbClient.client = mgoClient
	dbClient.wrapper.Database(mgoClient.Database(cfg.DbName))

	if cfg.FlushDB {
		dbClient.logger.Info("Start flush database")
		if err := dbClient.dropDatabase(ctx); err != nil {
			return nil, err
		}
	}
	if err := createIndexes(ctx, dbClient); err != nil {
		dbClient.logger.Warn("cannot create indexes", zap.Error(err))
	}

	return dbClient, nil
}

func createIndexes(ctx context.Context, dbClient *mongoDB) error {
	type CIndex struct {
		c     string
		model []mongo.IndexModel
	}

	indexes := []CIndex{
		// one document per burn transaction
		{c: cBurns, model: []mongo.IndexModel{{Keys: bson.M{"txHash": 1}, Options: options.Index().SetUnique(true)}}},
		{c: cBurns, model: []mongo.IndexModel{{Keys: bson.M{"timestamp": -1}}}},
	}
	for _, cIdx := range indexes {
		if err := dbClient.wrapper.C(cIdx.c).EnsureIndex(ctx, cIdx.model); err != nil {
			return err
		}
	}
	return nil
}

//region General

func (m *mongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *mongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *mongoDB) dropDatabase(ctx context.Context) error {
	return m.wrapper.DropDatabase(ctx)
}

//endregion General
