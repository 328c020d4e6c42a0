package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) Create(ctx context.Context, p participant.Participant) error {
	details, err := encodeDetails(p.Details)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("participants", participantInsertModel{
		ID:           p.ID,
		Kind:         string(p.Kind),
		Role:         p.Role,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		IDNumber:     p.IDNumber,
		Area:         p.Area,
		Details:      details,
		UserID:       optionalString(p.UserID),
		TeamID:       optionalString(p.TeamID),
		MigratedFrom: optionalString(p.MigratedFrom),
		CreatedAt:    p.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert participant query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", p.Kind, err)
	}
	return nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, kind participant.Kind, id string) (participant.Participant, bool, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(
			qb.Eq("kind", string(kind)),
			qb.Eq("id", id),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return participant.Participant{}, false, fmt.Errorf("build get participant query: %w", err)
	}

	var row participantTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participant.Participant{}, false, nil
		}
		return participant.Participant{}, false, fmt.Errorf("get %s: %w", kind, err)
	}
	p, err := participantFromRow(row)
	if err != nil {
		return participant.Participant{}, false, err
	}
	return p, true, nil
}

func (r *ParticipantRepository) SetTeamID(ctx context.Context, kind participant.Kind, id, teamID string) error {
	query, args, err := qb.Update("participants").
		Set("team_id", optionalString(teamID)).
		Where(
			qb.Eq("kind", string(kind)),
			qb.Eq("id", id),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set participant team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set %s team: %w", kind, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%s %s does not exist", kind, id)
	}
	return nil
}

func (r *ParticipantRepository) ListByUser(ctx context.Context, kind participant.Kind, userID string) ([]participant.Participant, error) {
	return r.list(ctx, qb.Eq("kind", string(kind)), qb.Eq("user_id", userID))
}

func (r *ParticipantRepository) ListByKind(ctx context.Context, kind participant.Kind) ([]participant.Participant, error) {
	return r.list(ctx, qb.Eq("kind", string(kind)))
}

func (r *ParticipantRepository) list(ctx context.Context, conditions ...qb.Condition) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").From("participants").
		Where(conditions...).
		OrderBy("created_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		p, err := participantFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func participantFromRow(row participantTableModel) (participant.Participant, error) {
	details, err := decodeDetails(row.Details)
	if err != nil {
		return participant.Participant{}, fmt.Errorf("participant %s: %w", row.ID, err)
	}
	return participant.Participant{
		ID:           row.ID,
		Kind:         participant.Kind(row.Kind),
		Role:         row.Role,
		FullName:     row.FullName,
		Email:        row.Email,
		Phone:        row.Phone,
		IDNumber:     row.IDNumber,
		Area:         row.Area,
		Details:      details,
		UserID:       row.UserID.String,
		TeamID:       row.TeamID.String,
		MigratedFrom: row.MigratedFrom.String,
		CreatedAt:    row.CreatedAt,
	}, nil
}
