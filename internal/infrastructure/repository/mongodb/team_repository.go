package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TeamRepository struct {
	c *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{c: db.Collection(collectionTeams)}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if _, err := r.c.InsertOne(ctx, teamToDocument(t)); err != nil {
		return fmt.Errorf("insert team %s: %w", t.ID, err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (team.Team, bool, error) {
	var doc teamDocument
	err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return team.Team{}, false, nil
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team %s: %w", id, err)
	}
	return doc.toDomain(), true, nil
}

func (r *TeamRepository) FindByField(ctx context.Context, field team.Field, value string) ([]team.Team, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unsupported team field %q", field)
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, bson.M{string(field): value}, opts)
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *TeamRepository) UpdateFields(ctx context.Context, id string, patch team.Patch) error {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.PaymentStatus != nil {
		set["paymentStatus"] = string(*patch.PaymentStatus)
		set["approved"] = *patch.PaymentStatus == team.StatusVerified
	}
	if patch.ManagerName != nil {
		set["managerName"] = *patch.ManagerName
	}
	if patch.ContactEmail != nil {
		set["contactEmail"] = *patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		set["contactPhone"] = *patch.ContactPhone
	}

	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update team %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("team %s does not exist", id)
	}
	return nil
}

func (r *TeamRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]team.Team, error) {
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find teams: %w", err)
	}
	defer cur.Close(ctx)

	var docs []teamDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}

	out := make([]team.Team, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}
