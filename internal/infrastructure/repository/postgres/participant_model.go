package postgres

import (
	"database/sql"
	"time"
)

type participantTableModel struct {
	ID           string         `db:"id"`
	Kind         string         `db:"kind"`
	Role         string         `db:"role"`
	FullName     string         `db:"full_name"`
	Email        string         `db:"email"`
	Phone        string         `db:"phone"`
	IDNumber     string         `db:"id_number"`
	Area         string         `db:"area"`
	Details      []byte         `db:"details"`
	UserID       sql.NullString `db:"user_id"`
	TeamID       sql.NullString `db:"team_id"`
	MigratedFrom sql.NullString `db:"migrated_from"`
	CreatedAt    time.Time      `db:"created_at"`
}

type participantInsertModel struct {
	ID           string    `db:"id"`
	Kind         string    `db:"kind"`
	Role         string    `db:"role"`
	FullName     string    `db:"full_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	IDNumber     string    `db:"id_number"`
	Area         string    `db:"area"`
	Details      []byte    `db:"details"`
	UserID       *string   `db:"user_id"`
	TeamID       *string   `db:"team_id"`
	MigratedFrom *string   `db:"migrated_from"`
	CreatedAt    time.Time `db:"created_at"`
}
