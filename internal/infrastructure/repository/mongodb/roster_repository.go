package mongodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RosterRepository maps each participant kind to its own team_<kind>
// collection.
type RosterRepository struct {
	db *mongo.Database
}

func NewRosterRepository(db *mongo.Database) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) AddMember(ctx context.Context, entry team.MemberEntry) error {
	if _, err := r.collection(entry.Kind).InsertOne(ctx, rosterToDocument(entry)); err != nil {
		return fmt.Errorf("insert %s roster entry for team %s: %w", entry.Kind, entry.TeamID, err)
	}
	return nil
}

func (r *RosterRepository) ListMembers(ctx context.Context, teamID string, kind participant.Kind) ([]team.MemberEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}})
	cur, err := r.collection(kind).Find(ctx, bson.M{"teamId": teamID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s roster for team %s: %w", kind, teamID, err)
	}
	defer cur.Close(ctx)

	var docs []rosterDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s roster: %w", kind, err)
	}
	out := make([]team.MemberEntry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain(kind))
	}
	return out, nil
}

func (r *RosterRepository) RemoveMember(ctx context.Context, teamID string, kind participant.Kind, entityID string) (int, error) {
	res, err := r.collection(kind).DeleteMany(ctx, memberFilter(teamID, kind, entityID))
	if err != nil {
		return 0, fmt.Errorf("delete %s roster entry %s from team %s: %w", kind, entityID, teamID, err)
	}
	return int(res.DeletedCount), nil
}

// memberFilter matches the roster entries of entityID by its back-reference
// field (playerId, coachId, managerId).
func memberFilter(teamID string, kind participant.Kind, entityID string) bson.M {
	return bson.M{
		"teamId":                  teamID,
		kind.BackReferenceField(): entityID,
	}
}

func (r *RosterRepository) ListTeamIDsWithMembers(ctx context.Context, kind participant.Kind) ([]string, error) {
	values, err := r.collection(kind).Distinct(ctx, "teamId", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s roster teams: %w", kind, err)
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if id, ok := value.(string); ok && id != "" {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *RosterRepository) collection(kind participant.Kind) *mongo.Collection {
	return r.db.Collection(rosterCollection(kind))
}
