package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	collectionUsers         = "users"
	collectionTeams         = "teams"
	collectionMessages      = "team_messages"
	collectionPaymentProofs = "team_payment_proofs"
	collectionRegistrations = "registrations"
)

// Connect opens a client and verifies the primary is reachable.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the equality and ordering indexes the repositories
// query on. No index is unique: duplicates are handled by the application.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	teamIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "teamName", Value: 1}}, Options: options.Index().SetName("idx_teams_team_name")},
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("idx_teams_legacy_name")},
		{Keys: bson.D{{Key: "contactEmail", Value: 1}}, Options: options.Index().SetName("idx_teams_contact_email")},
		{Keys: bson.D{{Key: "uploaderId", Value: 1}}, Options: options.Index().SetName("idx_teams_uploader")},
		{Keys: bson.D{{Key: "managerId", Value: 1}}, Options: options.Index().SetName("idx_teams_manager")},
		{Keys: bson.D{{Key: "coachId", Value: 1}}, Options: options.Index().SetName("idx_teams_coach")},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_teams_created")},
	}
	if _, err := db.Collection(collectionTeams).Indexes().CreateMany(ctx, teamIndexes); err != nil {
		return fmt.Errorf("create team indexes: %w", err)
	}

	for _, name := range []string{collectionMessages, collectionPaymentProofs} {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: "teamId", Value: 1}},
			Options: options.Index().SetName("idx_" + name + "_team"),
		}
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create %s index: %w", name, err)
		}
	}

	for _, kind := range rosterKinds {
		roster := mongo.IndexModel{
			Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: kind.BackReferenceField(), Value: 1}},
			Options: options.Index().SetName("idx_roster_team_entity"),
		}
		if _, err := db.Collection(rosterCollection(kind)).Indexes().CreateOne(ctx, roster); err != nil {
			return fmt.Errorf("create %s roster index: %w", kind, err)
		}

		canonical := []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetName("idx_user")},
			{Keys: bson.D{{Key: "teamId", Value: 1}}, Options: options.Index().SetName("idx_team")},
		}
		if _, err := db.Collection(kind.Collection()).Indexes().CreateMany(ctx, canonical); err != nil {
			return fmt.Errorf("create %s indexes: %w", kind.Collection(), err)
		}
	}
	return nil
}
