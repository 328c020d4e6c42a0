package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registration/internal/domain/team"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

type TeamLogRepository struct {
	db *sqlx.DB
}

func NewTeamLogRepository(db *sqlx.DB) *TeamLogRepository {
	return &TeamLogRepository{db: db}
}

func (r *TeamLogRepository) AppendMessage(ctx context.Context, msg team.Message) error {
	metadata, err := encodeDetails(msg.Metadata)
	if err != nil {
		return err
	}
	query, args, err := qb.InsertModel("team_messages", messageTableModel{
		ID:        msg.ID,
		TeamID:    msg.TeamID,
		Type:      string(msg.Type),
		Text:      msg.Text,
		Author:    msg.Author,
		Metadata:  metadata,
		CreatedAt: msg.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team message query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team message: %w", err)
	}
	return nil
}

func (r *TeamLogRepository) ListMessages(ctx context.Context, teamID string) ([]team.Message, error) {
	query, args, err := qb.Select("*").From("team_messages").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team messages query: %w", err)
	}

	var rows []messageTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team messages: %w", err)
	}

	out := make([]team.Message, 0, len(rows))
	for _, row := range rows {
		metadata, err := decodeDetails(row.Metadata)
		if err != nil {
			return nil, fmt.Errorf("team message %s: %w", row.ID, err)
		}
		out = append(out, team.Message{
			ID:        row.ID,
			TeamID:    row.TeamID,
			Type:      team.MessageType(row.Type),
			Text:      row.Text,
			Author:    row.Author,
			Metadata:  metadata,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *TeamLogRepository) AppendProof(ctx context.Context, proof team.PaymentProof) error {
	query, args, err := qb.InsertModel("team_payment_proofs", proofTableModel{
		ID:          proof.ID,
		TeamID:      proof.TeamID,
		Text:        proof.Text,
		URL:         proof.URL,
		SubmittedBy: proof.SubmittedBy,
		SubmittedAt: proof.SubmittedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert payment proof query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert payment proof: %w", err)
	}
	return nil
}

func (r *TeamLogRepository) ListProofs(ctx context.Context, teamID string) ([]team.PaymentProof, error) {
	query, args, err := qb.Select("*").From("team_payment_proofs").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("submitted_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payment proofs query: %w", err)
	}

	var rows []proofTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select payment proofs: %w", err)
	}

	out := make([]team.PaymentProof, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.PaymentProof{
			ID:          row.ID,
			TeamID:      row.TeamID,
			Text:        row.Text,
			URL:         row.URL,
			SubmittedBy: row.SubmittedBy,
			SubmittedAt: row.SubmittedAt,
		})
	}
	return out, nil
}
