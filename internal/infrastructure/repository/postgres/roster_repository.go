package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

// RosterRepository stores every kind's roster in team_members keyed by kind.
type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) AddMember(ctx context.Context, entry team.MemberEntry) error {
	details, err := encodeDetails(entry.Details)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("team_members", memberTableModel{
		ID:       entry.ID,
		TeamID:   entry.TeamID,
		Kind:     string(entry.Kind),
		EntityID: entry.EntityID,
		FullName: entry.FullName,
		Email:    entry.Email,
		Phone:    entry.Phone,
		IDNumber: entry.IDNumber,
		Area:     entry.Area,
		Role:     entry.Role,
		UserID:   entry.UserID,
		Details:  details,
		AddedAt:  entry.AddedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team member query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

func (r *RosterRepository) ListMembers(ctx context.Context, teamID string, kind participant.Kind) ([]team.MemberEntry, error) {
	query, args, err := qb.Select("*").From("team_members").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("kind", string(kind)),
		).
		OrderBy("added_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team members query: %w", err)
	}

	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make([]team.MemberEntry, 0, len(rows))
	for _, row := range rows {
		details, err := decodeDetails(row.Details)
		if err != nil {
			return nil, fmt.Errorf("team member %s: %w", row.ID, err)
		}
		out = append(out, team.MemberEntry{
			ID:       row.ID,
			TeamID:   row.TeamID,
			Kind:     participant.Kind(row.Kind),
			EntityID: row.EntityID,
			FullName: row.FullName,
			Email:    row.Email,
			Phone:    row.Phone,
			IDNumber: row.IDNumber,
			Area:     row.Area,
			Role:     row.Role,
			UserID:   row.UserID,
			Details:  details,
			AddedAt:  row.AddedAt,
		})
	}
	return out, nil
}

func (r *RosterRepository) RemoveMember(ctx context.Context, teamID string, kind participant.Kind, entityID string) (int, error) {
	query, args, err := qb.DeleteFrom("team_members").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("kind", string(kind)),
			qb.Eq("entity_id", entityID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete team member query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete team member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete team member rows affected: %w", err)
	}
	return int(affected), nil
}

func (r *RosterRepository) ListTeamIDsWithMembers(ctx context.Context, kind participant.Kind) ([]string, error) {
	query, args, err := qb.Select("DISTINCT team_id").From("team_members").
		Where(qb.Eq("kind", string(kind))).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster teams query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select roster teams: %w", err)
	}
	return ids, nil
}
