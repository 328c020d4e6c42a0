package postgres

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/team"
)

type teamTableModel struct {
	ID            string    `db:"id"`
	TeamName      string    `db:"team_name"`
	LegacyName    string    `db:"legacy_name"`
	Region        string    `db:"region"`
	Category      string    `db:"category"`
	ManagerName   string    `db:"manager_name"`
	ContactEmail  string    `db:"contact_email"`
	ContactPhone  string    `db:"contact_phone"`
	PaymentStatus string    `db:"payment_status"`
	UploaderID    string    `db:"uploader_id"`
	ManagerID     string    `db:"manager_id"`
	CoachID       string    `db:"coach_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func teamToRow(t team.Team) teamTableModel {
	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = t.CreatedAt
	}
	return teamTableModel{
		ID:            t.ID,
		TeamName:      t.TeamName,
		LegacyName:    t.LegacyName,
		Region:        t.Region,
		Category:      t.Category,
		ManagerName:   t.ManagerName,
		ContactEmail:  t.ContactEmail,
		ContactPhone:  t.ContactPhone,
		PaymentStatus: string(t.PaymentStatus),
		UploaderID:    t.UploaderID,
		ManagerID:     t.ManagerID,
		CoachID:       t.CoachID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:            row.ID,
		TeamName:      row.TeamName,
		LegacyName:    row.LegacyName,
		Region:        row.Region,
		Category:      row.Category,
		ManagerName:   row.ManagerName,
		ContactEmail:  row.ContactEmail,
		ContactPhone:  row.ContactPhone,
		PaymentStatus: team.ParsePaymentStatus(row.PaymentStatus),
		UploaderID:    row.UploaderID,
		ManagerID:     row.ManagerID,
		CoachID:       row.CoachID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func teamFieldColumn(field team.Field) (string, error) {
	switch field {
	case team.FieldTeamName:
		return "team_name", nil
	case team.FieldLegacyName:
		return "legacy_name", nil
	case team.FieldContactEmail:
		return "contact_email", nil
	case team.FieldUploaderID:
		return "uploader_id", nil
	case team.FieldManagerID:
		return "manager_id", nil
	case team.FieldCoachID:
		return "coach_id", nil
	default:
		return "", fmt.Errorf("unsupported team field %q", field)
	}
}
