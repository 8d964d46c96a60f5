// Package db
package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

const DefaultBurnsLimit = 100

// UpsertBurns stores burns keyed by transaction hash. Seen transactions only
// have their amount and updatedAt refreshed.
func (m *mongoDB) UpsertBurns(ctx context.Context, burns []*types.BurnRecord) error {
	if len(burns) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(burns))
	for _, b := range burns {
		models = append(models, mongo.NewUpdateOneModel().
			SetUpsert(true).
			SetFilter(bson.M{"txHash": b.TxHash}).
			SetUpdate(bson.M{
				"$set":         bson.M{"burnAmount": b.BurnAmount, "updatedAt": b.UpdatedAt},
				"$setOnInsert": bson.M{"timestamp": b.Timestamp},
			}))
	}

	res, err := m.wrapper.C(cBurns).BulkUpsert(ctx, models)
	if err != nil {
		m.logger.Warn("cannot upsert burns", zap.Int("count", len(burns)), zap.Error(err))
		return err
	}
	m.logger.Debug("upserted burns", zap.Int64("inserted", res.UpsertedCount), zap.Int64("modified", res.ModifiedCount))
	return nil
}

// Burns returns archived burns, newest first.
func (m *mongoDB) Burns(ctx context.Context, limit int64) ([]*types.BurnRecord, error) {
	if limit <= 0 {
		limit = DefaultBurnsLimit
	}
	col := m.wrapper.C(cBurns)
	opts := []*options.FindOptions{
		col.FindSetSort("-timestamp"),
		options.Find().SetProjection(bson.M{"_id": 0}),
		options.Find().SetLimit(limit),
	}
	cursor, err := col.Find(ctx, bson.M{}, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var burns []*types.BurnRecord
	if err := cursor.All(ctx, &burns); err != nil {
		return nil, err
	}
	return burns, nil
}

func (m *mongoDB) BurnsCount(ctx context.Context) (int64, error) {
	return m.wrapper.C(cBurns).Count(ctx, bson.M{})
}
