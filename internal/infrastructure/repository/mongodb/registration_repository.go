package mongodb

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RegistrationRepository reads the pre-split registrations collection.
type RegistrationRepository struct {
	c *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{c: db.Collection(collectionRegistrations)}
}

func (r *RegistrationRepository) ListLegacy(ctx context.Context) ([]registration.Legacy, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]registration.Legacy, 0)
	for cur.Next(ctx) {
		var doc legacyDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode registration: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}
