package mongodb

import (
	"context"
	"fmt"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TeamLogRepository keeps the append-only message and proof subcollections.
type TeamLogRepository struct {
	messages *mongo.Collection
	proofs   *mongo.Collection
}

func NewTeamLogRepository(db *mongo.Database) *TeamLogRepository {
	return &TeamLogRepository{
		messages: db.Collection(collectionMessages),
		proofs:   db.Collection(collectionPaymentProofs),
	}
}

func (r *TeamLogRepository) AppendMessage(ctx context.Context, msg team.Message) error {
	doc := messageDocument{
		ID:        msg.ID,
		TeamID:    msg.TeamID,
		Type:      string(msg.Type),
		Text:      msg.Text,
		Author:    msg.Author,
		Metadata:  msg.Metadata,
		CreatedAt: msg.CreatedAt,
	}
	if _, err := r.messages.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message for team %s: %w", msg.TeamID, err)
	}
	return nil
}

func (r *TeamLogRepository) ListMessages(ctx context.Context, teamID string) ([]team.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.messages.Find(ctx, bson.M{"teamId": teamID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find messages for team %s: %w", teamID, err)
	}
	defer cur.Close(ctx)

	var docs []messageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	out := make([]team.Message, 0, len(docs))
	for _, doc := range docs {
		out = append(out, team.Message{
			ID:        doc.ID,
			TeamID:    doc.TeamID,
			Type:      team.MessageType(doc.Type),
			Text:      doc.Text,
			Author:    doc.Author,
			Metadata:  doc.Metadata,
			CreatedAt: doc.CreatedAt,
		})
	}
	return out, nil
}

func (r *TeamLogRepository) AppendProof(ctx context.Context, proof team.PaymentProof) error {
	doc := proofDocument{
		ID:          proof.ID,
		TeamID:      proof.TeamID,
		Text:        proof.Text,
		URL:         proof.URL,
		SubmittedBy: proof.SubmittedBy,
		SubmittedAt: proof.SubmittedAt,
	}
	if _, err := r.proofs.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert payment proof for team %s: %w", proof.TeamID, err)
	}
	return nil
}

func (r *TeamLogRepository) ListProofs(ctx context.Context, teamID string) ([]team.PaymentProof, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	cur, err := r.proofs.Find(ctx, bson.M{"teamId": teamID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find payment proofs for team %s: %w", teamID, err)
	}
	defer cur.Close(ctx)

	var docs []proofDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payment proofs: %w", err)
	}
	out := make([]team.PaymentProof, 0, len(docs))
	for _, doc := range docs {
		out = append(out, team.PaymentProof{
			ID:          doc.ID,
			TeamID:      doc.TeamID,
			Text:        doc.Text,
			URL:         doc.URL,
			SubmittedBy: doc.SubmittedBy,
			SubmittedAt: doc.SubmittedAt,
		})
	}
	return out, nil
}
