package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ideaforge/portal-shell/internal/core/domain"
)

type PreferenceRepository struct {
	col *mongo.Collection
}

func NewPreferenceRepository(db *mongo.Database) *PreferenceRepository {
	return &PreferenceRepository{col: db.Collection(collectionPreferences)}
}

type preferenceDoc struct {
	Owner     string    `bson:"owner"`
	Theme     string    `bson:"theme"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// FindTheme returns ("", nil) when the owner never stored a preference.
func (r *PreferenceRepository) FindTheme(ctx context.Context, owner string) (domain.ThemeMode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc preferenceDoc
	err := r.col.FindOne(ctx, bson.M{"owner": owner}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", fmt.Errorf("find preference: %w", err)
	}
	return domain.ThemeMode(doc.Theme), nil
}

// SaveTheme upserts the owner's theme.
func (r *PreferenceRepository) SaveTheme(ctx context.Context, owner string, mode domain.ThemeMode) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"theme":      string(mode),
		"updated_at": time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, bson.M{"owner": owner}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}

func preferenceIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}
