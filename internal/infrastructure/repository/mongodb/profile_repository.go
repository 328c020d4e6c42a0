package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepository struct {
	c *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{c: db.Collection(collectionUsers)}
}

// MergeProfile sets only the non-empty fields so a later sign-in never
// blanks what an earlier one recorded.
func (r *ProfileRepository) MergeProfile(ctx context.Context, profile user.Profile) error {
	set := bson.M{"updatedAt": profile.UpdatedAt}
	if profile.Email != "" {
		set["email"] = profile.Email
	}
	if profile.DisplayName != "" {
		set["displayName"] = profile.DisplayName
	}
	if profile.Role != "" {
		set["role"] = profile.Role
	}

	_, err := r.c.UpdateOne(ctx,
		bson.M{"_id": profile.ID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("merge profile %s: %w", profile.ID, err)
	}
	return nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (user.Profile, bool, error) {
	var doc profileDocument
	err := r.c.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.Profile{}, false, nil
	}
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("get profile %s: %w", userID, err)
	}
	return doc.toDomain(), true, nil
}
