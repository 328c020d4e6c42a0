package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registration/internal/domain/registration"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

type legacyRegistrationTableModel struct {
	ID        string    `db:"id"`
	Role      string    `db:"role"`
	Team      string    `db:"team"`
	TeamID    string    `db:"team_id"`
	TeamName  string    `db:"team_name"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	IDNumber  string    `db:"id_number"`
	Area      string    `db:"area"`
	UserID    string    `db:"user_id"`
	Details   []byte    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}

// RegistrationRepository reads registrations imported into
// legacy_registrations from the pre-split form.
type RegistrationRepository struct {
	db *sqlx.DB
}

func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) ListLegacy(ctx context.Context) ([]registration.Legacy, error) {
	query, args, err := qb.Select("*").From("legacy_registrations").
		OrderBy("created_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list legacy registrations query: %w", err)
	}

	var rows []legacyRegistrationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select legacy registrations: %w", err)
	}

	out := make([]registration.Legacy, 0, len(rows))
	for _, row := range rows {
		details, err := decodeDetails(row.Details)
		if err != nil {
			return nil, fmt.Errorf("legacy registration %s: %w", row.ID, err)
		}
		out = append(out, registration.Legacy{
			ID:        row.ID,
			Role:      row.Role,
			Team:      row.Team,
			TeamID:    row.TeamID,
			TeamName:  row.TeamName,
			FullName:  row.FullName,
			Email:     row.Email,
			Phone:     row.Phone,
			IDNumber:  row.IDNumber,
			Area:      row.Area,
			UserID:    row.UserID,
			Details:   details,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
