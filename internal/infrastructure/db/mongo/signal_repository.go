package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ideaforge/portal-shell/internal/core/domain"
	"github.com/ideaforge/portal-shell/internal/core/ports"
)

// SignalRepository implements ports.SignalRepository using MongoDB.
type SignalRepository struct {
	col *mongo.Collection
}

func NewSignalRepository(db *mongo.Database) ports.SignalRepository {
	return &SignalRepository{col: db.Collection(collectionSignals)}
}

// InsertSignal appends a published signal to the connection_signals audit
// collection.
func (r *SignalRepository) InsertSignal(ctx context.Context, sig domain.ConnectionSignal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"connection_id": sig.ID,
		"status":        sig.Status,
		"signalled_at":  time.UnixMilli(sig.TS).UTC(),
		"published_at":  time.Now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func signalIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "connection_id", Value: 1}, {Key: "signalled_at", Value: -1}}},
	}
}
