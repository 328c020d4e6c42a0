package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	qb "github.com/riskibarqy/tournament-registration/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) MergeProfile(ctx context.Context, profile user.Profile) error {
	insertModel := profileInsertModel{
		ID:          profile.ID,
		Email:       optionalString(profile.Email),
		DisplayName: optionalString(profile.DisplayName),
		Role:        optionalString(profile.Role),
		UpdatedAt:   profile.UpdatedAt,
	}

	query, args, err := qb.InsertModel("user_profiles", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    email = COALESCE(EXCLUDED.email, user_profiles.email),
    display_name = COALESCE(EXCLUDED.display_name, user_profiles.display_name),
    role = COALESCE(EXCLUDED.role, user_profiles.role),
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build merge profile query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("merge profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (user.Profile, bool, error) {
	query, args, err := qb.Select("*").From("user_profiles").
		Where(qb.Eq("id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}

	return user.Profile{
		ID:          row.ID,
		Email:       row.Email.String,
		DisplayName: row.DisplayName.String,
		Role:        row.Role.String,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}
