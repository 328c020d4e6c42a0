package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ParticipantRepository struct {
	db *mongo.Database
}

func NewParticipantRepository(db *mongo.Database) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, p participant.Participant) error {
	if _, err := r.collection(p.Kind).InsertOne(ctx, participantToDocument(p)); err != nil {
		return fmt.Errorf("insert %s %s: %w", p.Kind, p.ID, err)
	}
	return nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, kind participant.Kind, id string) (participant.Participant, bool, error) {
	var doc participantDocument
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return participant.Participant{}, false, nil
	}
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("get %s %s: %w", kind, id, err)
	}
	return doc.toDomain(kind), true, nil
}

func (r *ParticipantRepository) SetTeamID(ctx context.Context, kind participant.Kind, id, teamID string) error {
	res, err := r.collection(kind).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"teamId": teamID}})
	if err != nil {
		return fmt.Errorf("set team on %s %s: %w", kind, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s %s does not exist", kind, id)
	}
	return nil
}

func (r *ParticipantRepository) ListByUser(ctx context.Context, kind participant.Kind, userID string) ([]participant.Participant, error) {
	return r.find(ctx, kind, bson.M{"userId": userID})
}

func (r *ParticipantRepository) ListByKind(ctx context.Context, kind participant.Kind) ([]participant.Participant, error) {
	return r.find(ctx, kind, bson.M{})
}

func (r *ParticipantRepository) find(ctx context.Context, kind participant.Kind, filter bson.M) ([]participant.Participant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cur, err := r.collection(kind).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", kind.Collection(), err)
	}
	defer cur.Close(ctx)

	var docs []participantDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.Collection(), err)
	}
	out := make([]participant.Participant, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain(kind))
	}
	return out, nil
}

func (r *ParticipantRepository) collection(kind participant.Kind) *mongo.Collection {
	return r.db.Collection(kind.Collection())
}
